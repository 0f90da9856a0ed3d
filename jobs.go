package remote

import (
	"time"

	"github.com/go-co-op/gocron/v2"
)

// startJobs schedules the periodic status line. A zero interval schedules
// nothing and returns a nil scheduler.
func startJobs(r *Remote, interval time.Duration) (gocron.Scheduler, error) {
	if interval <= 0 {
		return nil, nil
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(r.logStatus),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, err
	}

	s.Start()
	return s, nil
}

func (r *Remote) logStatus() {
	st := r.Status()
	remoteLogger.Info().
		Str("mode", st.Device.Mode).
		Str("activity", st.Device.Activity).
		Bool("connected", st.Device.Connected).
		Bool("idle", st.Device.Idle).
		Uint64("dispatched", st.Dispatch.Dispatched).
		Uint64("dropped", st.Dispatch.Dropped).
		Uint64("sink_errors", st.Dispatch.SinkErrors).
		Str("uptime", st.Uptime).
		Msg("status")
}
