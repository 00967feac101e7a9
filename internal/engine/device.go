package engine

import (
	"fmt"
	"strings"
)

// Device selects where a model executes.
type Device string

const (
	// DeviceAuto uses CUDA when the execution provider can be attached, else CPU.
	DeviceAuto Device = "auto"
	DeviceCPU  Device = "cpu"
	DeviceCUDA Device = "cuda"
)

// ParseDevice accepts auto, cpu, cuda (case-insensitive). Empty means auto.
func ParseDevice(s string) (Device, error) {
	switch Device(strings.ToLower(strings.TrimSpace(s))) {
	case "", DeviceAuto:
		return DeviceAuto, nil
	case DeviceCPU:
		return DeviceCPU, nil
	case DeviceCUDA, "gpu":
		return DeviceCUDA, nil
	default:
		return "", fmt.Errorf("unsupported device %q (want auto, cpu or cuda)", s)
	}
}

// openOnDevice calls open for dev. With DeviceAuto, an attempt that attached
// CUDA but still failed (missing cuDNN, driver mismatch) is retried on CPU.
func openOnDevice[T any](dev Device, open func(Device) (T, Device, error)) (T, Device, error) {
	v, got, err := open(dev)
	if err != nil && dev == DeviceAuto && got == DeviceCUDA {
		return open(DeviceCPU)
	}
	return v, got, err
}
