package collect

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"cclog/internal/compdb"
)

// SockListener is created when `cclog-daemon` starts.
// It listens to a unix socket for `cclog` wrapper invocations spawned by a
// parallel build. Records transferred via this socket are simple C-style
// strings with \b field separators and \0 delimiters, see onRequest.
type SockListener struct {
	activeConnections int32
	lastTimeAlive     time.Time
	netListener       net.Listener
}

func MakeSockListener() *SockListener {
	return &SockListener{
		activeConnections: 0,
		lastTimeAlive:     time.Now(),
	}
}

func (listener *SockListener) StartListeningUnixSocket(socketPath string) (err error) {
	_ = os.Remove(socketPath)
	listener.netListener, err = net.Listen("unix", socketPath)
	return
}

func (listener *SockListener) StartAcceptingConnections(collector *Collector) {
	for {
		conn, err := listener.netListener.Accept()
		if err != nil {
			select {
			case <-collector.quitChan:
				return
			default:
				logCollect.Error("daemon accept error", "err", err)
			}
		} else {
			listener.lastTimeAlive = time.Now()
			go listener.onRequest(conn, collector) // one `cclog` invocation
		}
	}
}

// EnterInfiniteLoopUntilQuit flushes on a timer and quits the daemon after an
// idle period with no wrapper connections (the next build can spawn it again).
func (listener *SockListener) EnterInfiniteLoopUntilQuit(collector *Collector, idleTimeout time.Duration, flushEvery time.Duration) {
	for {
		select {
		case <-collector.quitChan:
			_ = listener.netListener.Close() // Accept() will return an error immediately
			return

		case <-time.After(flushEvery):
			if err := collector.Flush(); err != nil {
				logCollect.Error("couldn't flush entries", "err", err)
			}
			nActive := atomic.LoadInt32(&listener.activeConnections)
			if nActive == 0 && time.Since(listener.lastTimeAlive) > idleTimeout {
				collector.QuitGracefully("no connections receiving anymore")
			}
		}
	}
}

// onRequest decodes records from one wrapper connection and hands them to the
// collector. Record format (one per entry, any number per connection):
// "{Directory}\b{File}\b{Command}\0"
// Response format: "1\0" on success, bare "\0" on a malformed request.
func (listener *SockListener) onRequest(conn net.Conn, collector *Collector) {
	atomic.AddInt32(&listener.activeConnections, 1)
	defer atomic.AddInt32(&listener.activeConnections, -1)

	reader := bufio.NewReaderSize(conn, 64*1024)
	var entries []compdb.Entry
	for {
		slice, err := reader.ReadSlice(0)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				logCollect.Error("couldn't read from socket", "err", err)
				listener.respondErr(conn)
				return
			}
			break // EOF: the wrapper closed its write side, all records are in
		}

		entry, err := DecodeRecord(slice[0 : len(slice)-1]) // -1 to strip off the trailing '\0'
		if err != nil {
			logCollect.Error("couldn't decode record", "err", err)
			listener.respondErr(conn)
			return
		}
		entries = append(entries, entry)
	}

	collector.Add(entries)
	listener.lastTimeAlive = time.Now()
	listener.respondOk(conn)
}

func (listener *SockListener) respondOk(conn net.Conn) {
	_, _ = conn.Write([]byte("1\000"))
	_ = conn.Close()
}

func (listener *SockListener) respondErr(conn net.Conn) {
	_, _ = conn.Write([]byte("\000"))
	_ = conn.Close()
}

// DecodeRecord parses one wire record back into an entry. The command is the
// last field and may itself contain any byte but '\0'.
func DecodeRecord(record []byte) (compdb.Entry, error) {
	parts := strings.SplitN(string(record), "\b", 3)
	if len(parts) != 3 {
		return compdb.Entry{}, fmt.Errorf("malformed collector record: %d fields", len(parts))
	}
	return compdb.Entry{Directory: parts[0], File: parts[1], Command: parts[2]}, nil
}
