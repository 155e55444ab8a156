//go:build !linux

package input

import "errors"

func ReadDevice(kbd string, state *State) (func(), error) {
	return nil, errors.New("keyboard devices are only supported on linux")
}
