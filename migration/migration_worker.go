package migration

import (
	"io"
	"sync/atomic"

	zlogger "github.com/0chain/bucketxfer/logger"
	"github.com/spf13/afero"
)

const spoolFilePattern = "xfer-*"

// MigrationWorker owns the spool directory and tracks how many copies are in
// flight and how many bytes are sitting on disk.
type MigrationWorker struct {
	fs      afero.Fs
	workDir string

	inFlight     int32
	peakInFlight int32
	bytesOnDisk  int64
	spooledCount int64
}

func NewMigrationWorker(fs afero.Fs, workDir string) (*MigrationWorker, error) {
	if err := fs.MkdirAll(workDir, 0755); err != nil {
		return nil, err
	}
	return &MigrationWorker{fs: fs, workDir: workDir}, nil
}

func (m *MigrationWorker) CopyStart() {
	n := atomic.AddInt32(&m.inFlight, 1)
	for {
		peak := atomic.LoadInt32(&m.peakInFlight)
		if n <= peak || atomic.CompareAndSwapInt32(&m.peakInFlight, peak, n) {
			return
		}
	}
}

func (m *MigrationWorker) CopyDone() {
	atomic.AddInt32(&m.inFlight, -1)
}

func (m *MigrationWorker) InFlight() int {
	return int(atomic.LoadInt32(&m.inFlight))
}

// PeakInFlight is the highest number of concurrent copies seen so far.
func (m *MigrationWorker) PeakInFlight() int {
	return int(atomic.LoadInt32(&m.peakInFlight))
}

func (m *MigrationWorker) BytesOnDisk() int64 {
	return atomic.LoadInt64(&m.bytesOnDisk)
}

func (m *MigrationWorker) SpooledCount() int64 {
	return atomic.LoadInt64(&m.spooledCount)
}

// Spool drains body into a temp file and rewinds it. The returned release
// func closes and removes the file and must always be called.
func (m *MigrationWorker) Spool(key string, body io.Reader) (afero.File, int64, func(), error) {
	f, err := afero.TempFile(m.fs, m.workDir, spoolFilePattern)
	if err != nil {
		return nil, 0, nil, err
	}

	remove := func() {
		name := f.Name()
		_ = f.Close()
		if err := m.fs.Remove(name); err != nil {
			zlogger.Logger.Error("could not remove spool file ", name, " Error: ", err)
		}
	}

	n, err := io.Copy(f, body)
	if err != nil {
		remove()
		return nil, 0, nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		remove()
		return nil, 0, nil, err
	}

	atomic.AddInt64(&m.bytesOnDisk, n)
	atomic.AddInt64(&m.spooledCount, 1)
	zlogger.Logger.Debugf("spooled %v (%d bytes) to %v", key, n, f.Name())

	release := func() {
		remove()
		atomic.AddInt64(&m.bytesOnDisk, -n)
	}
	return f, n, release, nil
}
