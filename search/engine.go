package search

import (
	"context"
	"time"

	"github.com/robvanmieghem/go-opencl/cl"
	"golang.org/x/sync/errgroup"

	"github.com/robvanmieghem/kawpow-search/kawpow"
	"github.com/robvanmieghem/kawpow-search/mining"
)

// Engine fans a single Job out across every device it was built with.
// This generalizes the reference miner's one-goroutine-per-device
// pattern from a continuous work-channel consumer to a single fan-out
// appropriate for one job.
type Engine struct {
	launchers []*Launcher
	config    Config
}

// DiscoverDevices enumerates OpenCL platforms and returns every device
// found, mirroring the platform/device enumeration in the reference
// miner's startup sequence. deviceType selects which class of device
// to enumerate (typically cl.DeviceTypeGPU).
func DiscoverDevices(deviceType cl.DeviceType) ([]*cl.Device, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		return nil, newLaunchError(CategoryDeviceMemory, ErrDeviceMemory, "get platforms: "+err.Error())
	}

	devices := make([]*cl.Device, 0, 4)
	for _, platform := range platforms {
		platformDevices, err := cl.GetDevices(platform, deviceType)
		if err != nil {
			log.Warnf("enumerate devices on platform %s: %v", platform.Name(), err)
			continue
		}
		devices = append(devices, platformDevices...)
	}
	return devices, nil
}

// NewEngine builds a Launcher per device. On error it releases any
// launchers already built before returning.
func NewEngine(devices []*cl.Device, config Config) (*Engine, error) {
	launchers := make([]*Launcher, 0, len(devices))
	for _, device := range devices {
		l, err := NewLauncher(device, config)
		if err != nil {
			for _, built := range launchers {
				built.Release()
			}
			return nil, err
		}
		launchers = append(launchers, l)
	}
	return &Engine{launchers: launchers, config: config}, nil
}

// Release frees every device the engine holds.
func (e *Engine) Release() {
	for _, l := range e.launchers {
		l.Release()
	}
	e.launchers = nil
}

// UploadDag uploads dag to every device the engine holds.
func (e *Engine) UploadDag(dag *kawpow.Dag) error {
	for _, l := range e.launchers {
		if err := l.UploadDag(dag); err != nil {
			return err
		}
	}
	return nil
}

// SearchAll splits [job.StartNonce, job.StartNonce+totalNonces) evenly
// across every device and launches them concurrently via errgroup. A
// hit on one device does not stop the other devices' launches: each
// launch runs to completion, and the group context is cancelled only
// when a launch returns an error, which stops launches that have not
// started yet. It returns the Result of the lowest-indexed device that
// found a hit (or a not-found Result if no device hit within its
// slice) and one HashRateReport per device.
func (e *Engine) SearchAll(ctx context.Context, baseJob Job, totalNonces uint64) (Result, []mining.HashRateReport, error) {
	if len(e.launchers) == 0 {
		return Result{}, nil, newLaunchError(CategoryInvalidArgument, ErrInvalidArgument, "no devices")
	}

	noncesPerBlock := uint64(e.config.NoncesPerBlock())
	perDevice := (totalNonces + uint64(len(e.launchers)) - 1) / uint64(len(e.launchers))
	if perDevice == 0 {
		perDevice = noncesPerBlock
	}
	// Round up to a whole number of blocks so every nonce in range is
	// covered at least once (spec.md section 8 property 4).
	blocksPerDevice := int((perDevice + noncesPerBlock - 1) / noncesPerBlock)

	group, groupCtx := errgroup.WithContext(ctx)
	results := make([]Result, len(e.launchers))
	reports := make([]mining.HashRateReport, len(e.launchers))

	for i, launcher := range e.launchers {
		i, launcher := i, launcher
		offset := uint64(i) * perDevice
		group.Go(func() error {
			select {
			case <-groupCtx.Done():
				return groupCtx.Err()
			default:
			}
			job := baseJob
			job.StartNonce = baseJob.StartNonce + offset

			start := time.Now()
			result, err := launcher.SearchOnce(job, blocksPerDevice)
			if err != nil {
				return err
			}
			elapsed := time.Since(start).Seconds()
			if elapsed > 0 {
				report := mining.HashRateReport{
					DeviceID: i,
					HashRate: float64(uint64(blocksPerDevice)*noncesPerBlock) / elapsed,
				}
				log.Infof("device %d: %.2f H/s", report.DeviceID, report.HashRate)
				reports[i] = report
			}
			results[i] = result
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return Result{}, nil, err
	}

	for _, r := range results {
		if r.Found() {
			return r, reports, nil
		}
	}
	return Result{}, reports, nil
}
