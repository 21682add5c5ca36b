package output

import (
	"bufio"
	"fmt"
	"io"
)

// WriteText writes header (if non-empty) and one row per item.
func WriteText[T any](w io.Writer, list []T, header string, row func(int, T) string) error {
	bw := bufio.NewWriter(w)
	if header != "" {
		if _, err := fmt.Fprintln(bw, header); err != nil {
			return err
		}
	}
	for i, x := range list {
		if _, err := fmt.Fprintln(bw, row(i, x)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// StreamText is WriteText for items arriving on a channel.
func StreamText[T any](w io.Writer, in <-chan T, header string, row func(int, T) string) error {
	bw := bufio.NewWriter(w)
	if header != "" {
		if _, err := fmt.Fprintln(bw, header); err != nil {
			return err
		}
	}
	i := 0
	for x := range in {
		if _, err := fmt.Fprintln(bw, row(i, x)); err != nil {
			return err
		}
		i++
	}
	return bw.Flush()
}
