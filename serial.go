package remote

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/jetkvm/remote/internal/activity"
	"github.com/jetkvm/remote/internal/touch"
	"github.com/rs/zerolog"
	"go.bug.st/serial"
)

// The key matrix, touch controller and BLE radio sit behind a coprocessor
// that speaks a line protocol on a UART:
//
//	T <x> <y> <z>   raw touch sample, contact present
//	T -             no contact
//	K <P|R|L> <hex> key event (press, release, long press) for a key code
//	C <0|1>         HID link state
//
// Commands written back are "A" (restart advertising) and "B <level>"
// (keyboard backlight, 0..1).

const maxQueuedKeys = 64

var errBridgeLine = errors.New("invalid bridge line")

var defaultMode = &serial.Mode{
	BaudRate: 115200,
	DataBits: 8,
	Parity:   serial.NoParity,
	StopBits: serial.OneStopBit,
}

// BridgeInput is what the controller reported since the last poll.
type BridgeInput struct {
	Touched   bool
	Sample    touch.RawSample
	Keys      []activity.KeyEvent
	Connected bool
}

type Bridge struct {
	port io.ReadWriteCloser
	log  *zerolog.Logger

	writeLock sync.Mutex

	mu        sync.Mutex
	touched   bool
	sample    touch.RawSample
	connected bool
	keys      []activity.KeyEvent
	dropped   uint64
}

func OpenBridge(cfg SerialConfig) (*Bridge, error) {
	portMode := *defaultMode
	if cfg.Baud > 0 {
		portMode.BaudRate = cfg.Baud
	}
	port, err := serial.Open(cfg.Port, &portMode)
	if err != nil {
		serialLogger.Error().
			Err(err).
			Str("path", cfg.Port).
			Interface("mode", portMode).
			Msg("Error opening serial port")
		return nil, fmt.Errorf("failed to open %s: %w", cfg.Port, err)
	}
	return newBridge(port, serialLogger), nil
}

func newBridge(port io.ReadWriteCloser, logger *zerolog.Logger) *Bridge {
	return &Bridge{port: port, log: logger}
}

// Run reads lines until the port fails or ctx is cancelled.
func (b *Bridge) Run(ctx context.Context) error {
	scopedLogger := b.log.With().Str("service", "bridge_reader").Logger()

	go func() {
		<-ctx.Done()
		_ = b.port.Close()
	}()

	err := b.read(b.port, &scopedLogger)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func (b *Bridge) read(r io.Reader, l *zerolog.Logger) error {
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			if perr := b.handleLine(line); perr != nil {
				l.Warn().Err(perr).Str("line", strings.TrimSpace(line)).Msg("Invalid line")
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			l.Warn().Err(err).Msg("Error reading from serial port")
			return err
		}
	}
}

func (b *Bridge) handleLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "T":
		touched, sample, err := parseTouch(fields[1:])
		if err != nil {
			return err
		}
		b.mu.Lock()
		b.touched = touched
		if touched {
			b.sample = sample
		}
		b.mu.Unlock()

	case "K":
		ev, err := parseKey(fields[1:])
		if err != nil {
			return err
		}
		b.mu.Lock()
		if len(b.keys) >= maxQueuedKeys {
			b.keys = b.keys[1:]
			b.dropped++
		}
		b.keys = append(b.keys, ev)
		b.mu.Unlock()

	case "C":
		if len(fields) != 2 || (fields[1] != "0" && fields[1] != "1") {
			return fmt.Errorf("%w: link state", errBridgeLine)
		}
		b.mu.Lock()
		b.connected = fields[1] == "1"
		b.mu.Unlock()

	default:
		return fmt.Errorf("%w: unknown message %q", errBridgeLine, fields[0])
	}
	return nil
}

func parseTouch(args []string) (bool, touch.RawSample, error) {
	if len(args) == 1 && args[0] == "-" {
		return false, touch.RawSample{}, nil
	}
	if len(args) != 3 {
		return false, touch.RawSample{}, fmt.Errorf("%w: touch needs x y z", errBridgeLine)
	}
	var v [3]uint16
	for i, a := range args {
		n, err := strconv.ParseUint(a, 10, 16)
		if err != nil {
			return false, touch.RawSample{}, fmt.Errorf("%w: touch value %q", errBridgeLine, a)
		}
		v[i] = uint16(n)
	}
	return true, touch.RawSample{X: v[0], Y: v[1], Z: v[2]}, nil
}

func parseKey(args []string) (activity.KeyEvent, error) {
	if len(args) != 2 {
		return activity.KeyEvent{}, fmt.Errorf("%w: key needs transition and code", errBridgeLine)
	}

	var t activity.Transition
	switch args[0] {
	case "P":
		t = activity.Press
	case "R":
		t = activity.Release
	case "L":
		t = activity.LongPress
	default:
		return activity.KeyEvent{}, fmt.Errorf("%w: key transition %q", errBridgeLine, args[0])
	}

	code, err := strconv.ParseUint(args[1], 16, 32)
	if err != nil || code == 0 {
		return activity.KeyEvent{}, fmt.Errorf("%w: key code %q", errBridgeLine, args[1])
	}
	return activity.KeyEvent{Key: activity.Key(code), Transition: t}, nil
}

// Poll returns the latest touch and link state and drains queued keys.
func (b *Bridge) Poll() BridgeInput {
	b.mu.Lock()
	defer b.mu.Unlock()

	in := BridgeInput{
		Touched:   b.touched,
		Sample:    b.sample,
		Keys:      b.keys,
		Connected: b.connected,
	}
	b.keys = nil
	return in
}

// Dropped counts key events discarded because the queue was full.
func (b *Bridge) Dropped() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}

func (b *Bridge) command(cmd string) error {
	b.writeLock.Lock()
	defer b.writeLock.Unlock()

	if _, err := b.port.Write([]byte("\n")); err != nil {
		return err
	}
	_, err := b.port.Write([]byte(cmd + "\n"))
	return err
}

// Advertise asks the radio to start advertising again.
func (b *Bridge) Advertise() error {
	return b.command("A")
}

func (b *Bridge) SetKeyboardBacklight(level float64) error {
	return b.command("B " + strconv.FormatFloat(level, 'f', 3, 64))
}

func (b *Bridge) Close() error {
	return b.port.Close()
}
