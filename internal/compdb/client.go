package compdb

import (
	"bufio"
	"fmt"
	"net"
	"time"
)

// SendToCollector forwards entries to a running cclog-daemon over its unix
// socket instead of locking the database file in this process.
// Record format (one per entry): "{Directory}\b{File}\b{Command}\0".
// After all records are written, the write side is closed and a single
// "1\0" acknowledgement is expected back.
func SendToCollector(socketPath string, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	conn, err := net.DialTimeout("unix", socketPath, 3*time.Second)
	if err != nil {
		return err
	}
	defer conn.Close()

	for _, e := range entries {
		if _, err := conn.Write(fmt.Appendf(nil, "%s\b%s\b%s\000", e.Directory, e.File, e.Command)); err != nil {
			return err
		}
	}
	if unixConn, ok := conn.(*net.UnixConn); ok {
		_ = unixConn.CloseWrite()
	}

	slice, err := bufio.NewReaderSize(conn, 4*1024).ReadSlice(0)
	if err != nil {
		return fmt.Errorf("couldn't read collector response: %v", err)
	}
	if len(slice) < 2 || slice[0] != '1' {
		return fmt.Errorf("collector refused entries")
	}
	return nil
}
