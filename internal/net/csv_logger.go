package net

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

var csvLogHeader = []string{"epoch", "loss", "time_seconds"}

// CSVLogger writes one row per epoch, "epoch,loss,time_seconds", to Filename.
// Elapsed time is measured from OnTrainBegin. With Append set, rows are added
// to an existing file and the header is only written when the file is empty.
// I/O failures are logged through the network's logger and never stop training.
type CSVLogger struct {
	BaseCallback
	Filename string
	Append   bool

	out   *os.File
	w     *csv.Writer
	begin time.Time
}

// NewCSVLogger creates a new CSVLogger.
func NewCSVLogger(filename string, append bool) *CSVLogger {
	return &CSVLogger{Filename: filename, Append: append}
}

func (c *CSVLogger) OnTrainBegin(n *Network) {
	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if c.Append {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	f, err := os.OpenFile(c.Filename, flags, 0o644)
	if err != nil {
		n.logger.Printf("csv_log=%s open failed: %v", c.Filename, err)
		return
	}

	c.out, c.w, c.begin = f, csv.NewWriter(f), time.Now()
	if info, err := f.Stat(); err == nil && info.Size() == 0 {
		c.write(n, csvLogHeader)
	}
}

func (c *CSVLogger) OnEpochEnd(epoch int, loss float64, n *Network) {
	if c.w == nil {
		return
	}
	c.write(n, []string{
		strconv.Itoa(epoch),
		strconv.FormatFloat(loss, 'f', 6, 64),
		strconv.FormatFloat(time.Since(c.begin).Seconds(), 'f', 2, 64),
	})
}

func (c *CSVLogger) OnTrainEnd(n *Network) {
	if c.out == nil {
		return
	}
	if err := c.out.Close(); err != nil {
		n.logger.Printf("csv_log=%s close failed: %v", c.Filename, err)
	}
	c.out, c.w = nil, nil
}

// write emits a row and flushes it so the file is readable while training runs.
func (c *CSVLogger) write(n *Network, record []string) {
	if err := c.w.Write(record); err != nil {
		n.logger.Printf("csv_log=%s write failed: %v", c.Filename, err)
		return
	}
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		n.logger.Printf("csv_log=%s flush failed: %v", c.Filename, err)
	}
}
