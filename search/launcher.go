package search

import (
	"unsafe"

	"github.com/robvanmieghem/go-opencl/cl"

	"github.com/robvanmieghem/kawpow-search/kawpow"
)

// Job describes a single dispatch to a device: the header and DAG to
// mix against, the target a digest must not exceed, and the first
// nonce the launch's threads start counting from.
type Job struct {
	Header     kawpow.Header
	Dag        *kawpow.Dag
	Target     Target
	StartNonce uint64
}

// Launcher builds and runs the search kernel against a single OpenCL
// device. It is grounded on the per-device lifecycle used throughout
// the reference miner (context/queue/program/kernel construction,
// buffer upload, NDRange dispatch, buffer readback) but is job-shaped
// rather than continuously polling a work channel: SearchOnce launches
// exactly one dispatch and returns.
type Launcher struct {
	device *cl.Device
	config Config

	context      *cl.Context
	commandQueue *cl.CommandQueue
	program      *cl.Program
	kernel       *cl.Kernel
	dagBuffer    *cl.MemObject
	dagSize      uint64
}

// NewLauncher builds the OpenCL context, program and kernel for a
// device. The caller must call Release when done.
func NewLauncher(device *cl.Device, config Config) (*Launcher, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}

	context, err := cl.CreateContext([]*cl.Device{device})
	if err != nil {
		return nil, newLaunchError(CategoryDeviceMemory, ErrDeviceMemory, "create context: "+err.Error())
	}

	commandQueue, err := context.CreateCommandQueue(device, 0)
	if err != nil {
		context.Release()
		return nil, newLaunchError(CategoryDeviceMemory, ErrDeviceMemory, "create command queue: "+err.Error())
	}

	program, err := context.CreateProgramWithSource([]string{kernelSource})
	if err != nil {
		commandQueue.Release()
		context.Release()
		return nil, newLaunchError(CategoryLaunchFailure, ErrLaunchFailure, "create program: "+err.Error())
	}

	if err = program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		program.Release()
		commandQueue.Release()
		context.Release()
		return nil, newLaunchError(CategoryLaunchFailure, ErrLaunchFailure, "build program: "+err.Error())
	}

	kernel, err := program.CreateKernel("kawpow_search")
	if err != nil {
		program.Release()
		commandQueue.Release()
		context.Release()
		return nil, newLaunchError(CategoryLaunchFailure, ErrLaunchFailure, "create kernel: "+err.Error())
	}

	return &Launcher{
		device:       device,
		config:       config,
		context:      context,
		commandQueue: commandQueue,
		program:      program,
		kernel:       kernel,
	}, nil
}

// Release frees the device resources owned by the launcher. The
// launcher must not be used afterward.
func (l *Launcher) Release() {
	if l.dagBuffer != nil {
		l.dagBuffer.Release()
		l.dagBuffer = nil
	}
	l.kernel.Release()
	l.program.Release()
	l.commandQueue.Release()
	l.context.Release()
}

// UploadDag copies dag to device memory, replacing any DAG uploaded by
// a previous call. Every call uploads dag again, even when it is the
// same DAG that is already on the device.
func (l *Launcher) UploadDag(dag *kawpow.Dag) error {
	if dag.Size()%64 != 0 {
		return newLaunchError(CategoryInvalidArgument, ErrInvalidArgument, "dag size not a multiple of 64")
	}
	if dag.Size() < DefaultSharedCacheSize {
		return newLaunchError(CategoryInvalidArgument, ErrInvalidArgument, "dag smaller than the hot-cache region")
	}

	if l.dagBuffer != nil {
		l.dagBuffer.Release()
		l.dagBuffer = nil
	}

	raw := dag.Bytes()
	buffer, err := l.context.CreateBufferUnsafe(cl.MemReadOnly|cl.MemCopyHostPtr, len(raw), unsafe.Pointer(&raw[0]))
	if err != nil {
		return newLaunchError(CategoryDeviceMemory, ErrDeviceMemory, "upload dag: "+err.Error())
	}
	l.dagBuffer = buffer
	l.dagSize = dag.Size()
	return nil
}

// SearchOnce dispatches a single launch covering
// config.NoncesPerBlock() * blocks consecutive nonces starting at
// job.StartNonce, and returns the winning Result if any nonce in the
// range met job.Target. It implements the preconditions of spec.md
// section 7 and the dispatch geometry of section 4.5.
func (l *Launcher) SearchOnce(job Job, blocks int) (Result, error) {
	if l.dagBuffer == nil || job.Dag == nil {
		return Result{}, newLaunchError(CategoryInvalidArgument, ErrInvalidArgument, "no dag uploaded")
	}
	if blocks <= 0 {
		return Result{}, newLaunchError(CategoryInvalidArgument, ErrInvalidArgument, "blocks must be positive")
	}

	headerBuf, err := l.context.CreateBufferUnsafe(cl.MemReadOnly|cl.MemCopyHostPtr, len(job.Header), unsafe.Pointer(&job.Header[0]))
	if err != nil {
		return Result{}, newLaunchError(CategoryDeviceMemory, ErrDeviceMemory, "upload header: "+err.Error())
	}
	defer headerBuf.Release()

	targetBuf, err := l.context.CreateBufferUnsafe(cl.MemReadOnly|cl.MemCopyHostPtr, len(job.Target), unsafe.Pointer(&job.Target[0]))
	if err != nil {
		return Result{}, newLaunchError(CategoryDeviceMemory, ErrDeviceMemory, "upload target: "+err.Error())
	}
	defer targetBuf.Release()

	resultNonceBuf, err := l.context.CreateEmptyBuffer(cl.MemReadWrite, 8)
	if err != nil {
		return Result{}, newLaunchError(CategoryDeviceMemory, ErrDeviceMemory, "alloc result nonce: "+err.Error())
	}
	defer resultNonceBuf.Release()

	resultHashBuf, err := l.context.CreateEmptyBuffer(cl.MemReadWrite, kawpow.DigestBytes)
	if err != nil {
		return Result{}, newLaunchError(CategoryDeviceMemory, ErrDeviceMemory, "alloc result hash: "+err.Error())
	}
	defer resultHashBuf.Release()

	resultMixBuf, err := l.context.CreateEmptyBuffer(cl.MemReadWrite, kawpow.DigestBytes)
	if err != nil {
		return Result{}, newLaunchError(CategoryDeviceMemory, ErrDeviceMemory, "alloc result mix: "+err.Error())
	}
	defer resultMixBuf.Release()

	zeroNonce := make([]byte, 8)
	if _, err = l.commandQueue.EnqueueWriteBufferByte(resultNonceBuf, true, 0, zeroNonce, nil); err != nil {
		return Result{}, newLaunchError(CategoryDeviceMemory, ErrDeviceMemory, "zero result nonce: "+err.Error())
	}

	if err = l.kernel.SetArgBuffer(0, headerBuf); err != nil {
		return Result{}, newLaunchError(CategoryLaunchFailure, ErrLaunchFailure, "set header arg: "+err.Error())
	}
	if err = l.kernel.SetArgUint32(1, uint32(len(job.Header))); err != nil {
		return Result{}, newLaunchError(CategoryLaunchFailure, ErrLaunchFailure, "set header_len arg: "+err.Error())
	}
	if err = l.kernel.SetArgBuffer(2, l.dagBuffer); err != nil {
		return Result{}, newLaunchError(CategoryLaunchFailure, ErrLaunchFailure, "set dag arg: "+err.Error())
	}
	if err = l.kernel.SetArgUint64(3, l.dagSize); err != nil {
		return Result{}, newLaunchError(CategoryLaunchFailure, ErrLaunchFailure, "set dag_size arg: "+err.Error())
	}
	if err = l.kernel.SetArgBuffer(4, targetBuf); err != nil {
		return Result{}, newLaunchError(CategoryLaunchFailure, ErrLaunchFailure, "set target arg: "+err.Error())
	}
	if err = l.kernel.SetArgUint64(5, job.StartNonce); err != nil {
		return Result{}, newLaunchError(CategoryLaunchFailure, ErrLaunchFailure, "set start_nonce arg: "+err.Error())
	}
	if err = l.kernel.SetArgBuffer(6, resultNonceBuf); err != nil {
		return Result{}, newLaunchError(CategoryLaunchFailure, ErrLaunchFailure, "set result_nonce arg: "+err.Error())
	}
	if err = l.kernel.SetArgBuffer(7, resultHashBuf); err != nil {
		return Result{}, newLaunchError(CategoryLaunchFailure, ErrLaunchFailure, "set result_hash arg: "+err.Error())
	}
	if err = l.kernel.SetArgBuffer(8, resultMixBuf); err != nil {
		return Result{}, newLaunchError(CategoryLaunchFailure, ErrLaunchFailure, "set result_mix arg: "+err.Error())
	}
	if err = l.kernel.SetArgLocal(9, uintptr(l.config.SharedCacheSize)); err != nil {
		return Result{}, newLaunchError(CategoryLaunchFailure, ErrLaunchFailure, "set cache local arg: "+err.Error())
	}
	if err = l.kernel.SetArgUint32(10, uint32(l.config.NoncesPerThread)); err != nil {
		return Result{}, newLaunchError(CategoryLaunchFailure, ErrLaunchFailure, "set nonces_per_thread arg: "+err.Error())
	}

	globalItems := blocks * l.config.ThreadsPerBlock
	if _, err = l.commandQueue.EnqueueNDRangeKernel(l.kernel, []int{0}, []int{globalItems}, []int{l.config.ThreadsPerBlock}, nil); err != nil {
		return Result{}, newLaunchError(CategoryLaunchFailure, ErrLaunchFailure, "enqueue kernel: "+err.Error())
	}

	var result Result
	nonceBytes := make([]byte, 8)
	if _, err = l.commandQueue.EnqueueReadBufferByte(resultNonceBuf, true, 0, nonceBytes, nil); err != nil {
		return Result{}, newLaunchError(CategoryDeviceMemory, ErrDeviceMemory, "read result nonce: "+err.Error())
	}
	result.Nonce = bytesToUint64LE(nonceBytes)
	if !result.Found() {
		log.Debugf("device %s: no hit in [%d, %d)", l.device.Name(), job.StartNonce, job.StartNonce+uint64(globalItems)*uint64(l.config.NoncesPerThread))
		return result, nil
	}

	hashBytes := make([]byte, kawpow.DigestBytes)
	if _, err = l.commandQueue.EnqueueReadBufferByte(resultHashBuf, true, 0, hashBytes, nil); err != nil {
		return Result{}, newLaunchError(CategoryDeviceMemory, ErrDeviceMemory, "read result hash: "+err.Error())
	}
	copy(result.Hash[:], hashBytes)

	mixBytes := make([]byte, kawpow.DigestBytes)
	if _, err = l.commandQueue.EnqueueReadBufferByte(resultMixBuf, true, 0, mixBytes, nil); err != nil {
		return Result{}, newLaunchError(CategoryDeviceMemory, ErrDeviceMemory, "read result mix: "+err.Error())
	}
	copy(result.Mix[:], mixBytes)

	return result, nil
}

func bytesToUint64LE(b []byte) uint64 {
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}
