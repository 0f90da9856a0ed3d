//go:build !amd64

package utils

import (
	"sync"

	"github.com/erikdubbelboer/gspt"
)

var (
	titleMu   sync.Mutex
	lastTitle string
)

// SetProcTitle shows title in ps and top on the device. A title equal to the
// current one is not written again.
func SetProcTitle(title string) {
	titleMu.Lock()
	defer titleMu.Unlock()

	if title == lastTitle {
		return
	}
	lastTitle = title
	gspt.SetProcTitle(title)
}
