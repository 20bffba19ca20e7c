package joystick

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
	"go.uber.org/zap"

	"github.com/frostbay/joyrig/internal/logger"
)

// Config holds serial channel settings.
type Config struct {
	Port        string        `yaml:"port"`
	Baud        int           `yaml:"baud"`
	SettleDelay time.Duration `yaml:"settle_delay"`
	QueueSize   int           `yaml:"queue_size"`
}

// Reader drains newline-terminated frames from a serial channel on a
// dedicated goroutine and hands them to the control loop one at a time.
//
// The queue is single-producer/single-consumer. When it fills up the oldest
// unread line is dropped so the newest data wins, matching the loop's policy
// of smoothing input bursts across ticks instead of stalling on them.
type Reader struct {
	src   io.ReadCloser
	lines chan string
	done  chan struct{}
}

// Open connects to the joystick on the given serial port.
// It blocks for the configured settle delay before any read is attempted:
// opening the port resets the Arduino, and bytes sent while it reboots are
// garbage. The returned error is non-fatal to callers by contract; the
// control loop runs without input when the channel is unavailable.
func Open(cfg Config) (*Reader, error) {
	logger.Info("connecting to joystick",
		zap.String("port", cfg.Port),
		zap.Int("baud", cfg.Baud),
	)

	port, err := serial.Open(cfg.Port, &serial.Mode{BaudRate: cfg.Baud})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Port, err)
	}

	if cfg.SettleDelay > 0 {
		time.Sleep(cfg.SettleDelay)
	}

	logger.Info("joystick connected", zap.String("port", cfg.Port))
	return NewReader(port, cfg.QueueSize), nil
}

// NewReader starts draining lines from src into a queue of the given size.
// Used directly by tests; production code goes through Open.
func NewReader(src io.ReadCloser, queueSize int) *Reader {
	if queueSize <= 0 {
		queueSize = 32
	}

	r := &Reader{
		src:   src,
		lines: make(chan string, queueSize),
		done:  make(chan struct{}),
	}
	go r.drain()
	return r
}

// drain runs on its own goroutine, blocking on serial reads so the control
// loop never does.
func (r *Reader) drain() {
	defer close(r.done)

	sc := bufio.NewScanner(r.src)
	for sc.Scan() {
		line := sc.Text()
		select {
		case r.lines <- line:
		default:
			// Queue full: discard the oldest unread line, keep the newest.
			select {
			case <-r.lines:
			default:
			}
			select {
			case r.lines <- line:
			default:
			}
		}
	}

	// Scanner stops on port close or read error; either way the loop just
	// sees an empty queue from here on.
	if err := sc.Err(); err != nil {
		logger.Debug("serial read stopped", zap.Error(err))
	}
}

// Poll consumes at most one buffered line and decodes it. It never blocks:
// with no buffered data it returns ok=false immediately, and a malformed
// line is dropped the same way. Safe to call on a nil Reader (degraded
// mode, no serial channel).
func (r *Reader) Poll() (Sample, bool) {
	if r == nil {
		return Sample{}, false
	}

	select {
	case line := <-r.lines:
		return DecodeLine(line)
	default:
		return Sample{}, false
	}
}

// Close shuts the serial channel and waits for the drain goroutine to stop.
func (r *Reader) Close() {
	if r == nil {
		return
	}
	_ = r.src.Close()
	<-r.done
}
