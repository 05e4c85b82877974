// Package shell drives an index from line-oriented text commands.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/olekukonko/tablewriter"

	"github.com/metailurini/skipindex"
	"github.com/metailurini/skipindex/codec"
	"github.com/metailurini/skipindex/persist"
)

// Shell reads commands, applies them to an index and prints the outcome.
type Shell struct {
	idx       *skipindex.Index[string, string]
	storePath string
	out       io.Writer
	logger    hclog.Logger
}

func New(idx *skipindex.Index[string, string], storePath string, out io.Writer, logger hclog.Logger) *Shell {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Shell{
		idx:       idx,
		storePath: storePath,
		out:       out,
		logger:    logger,
	}
}

// Run processes commands from in until it is exhausted or an exit command
// is read. Only a failure to read in is returned; command failures are
// printed and the loop continues.
func (s *Shell) Run(in io.Reader) error {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if !s.Exec(sc.Text()) {
			return nil
		}
	}
	return sc.Err()
}

// Exec runs a single command line. It returns false when the shell should
// stop.
func (s *Shell) Exec(line string) bool {
	args := strings.Fields(line)
	if len(args) == 0 {
		return true
	}

	switch cmd := args[0]; cmd {
	case "add":
		if !s.arity(args, 3) {
			return true
		}
		s.idx.Insert(args[1], args[2])
		s.printf("Key: %s Value: %s insert success!\n", args[1], args[2])
	case "del":
		if !s.arity(args, 2) {
			return true
		}
		if s.idx.Delete(args[1]) {
			s.printf("Key: %s deleted!\n", args[1])
		} else {
			s.printf("skiplist not exists the key: %s\n", args[1])
		}
	case "search":
		if !s.arity(args, 2) {
			return true
		}
		if s.idx.Contains(args[1]) {
			s.printf("Key: %s exists!\n", args[1])
		} else {
			s.printf("Key: %s not exists!\n", args[1])
		}
	case "get":
		if !s.arity(args, 2) {
			return true
		}
		if v, ok := s.idx.Get(args[1]); ok {
			s.printf("Key: %s's value is %s\n", args[1], v)
		} else {
			s.printf("Key: %s not exists!\n", args[1])
		}
	case "dump":
		res, err := persist.DumpFile(s.storePath, s.idx, codec.String(), codec.String(), persist.WithLogger(s.logger))
		if err != nil {
			s.logger.Error("dump failed", "path", s.storePath, "error", err)
			s.printf("dump failed: %v\n", err)
			return true
		}
		s.printf("Already saved skiplist. records=%d flagged=%d\n", res.Records, res.Flagged)
	case "load":
		res, err := persist.LoadFile(s.storePath, s.idx, codec.String(), codec.String(), persist.WithLogger(s.logger))
		if err != nil {
			s.logger.Error("load failed", "path", s.storePath, "error", err)
			s.printf("load failed: %v\n", err)
			return true
		}
		s.printf("Loaded skiplist. records=%d skipped=%d\n", res.Records, res.Skipped)
	case "stats":
		s.renderStats()
	case "exit", "quit":
		return false
	default:
		s.idx.Render(s.out)
	}
	return true
}

func (s *Shell) arity(args []string, n int) bool {
	if len(args) != n {
		s.printf("usage: %s expects %d argument(s)\n", args[0], n-1)
		return false
	}
	return true
}

func (s *Shell) printf(format string, a ...any) {
	fmt.Fprintf(s.out, format, a...)
}

func (s *Shell) renderStats() {
	st := s.idx.Stats()
	table := tablewriter.NewWriter(s.out)
	table.SetHeader([]string{"Metric", "Value"})
	table.SetAutoWrapText(false)
	table.AppendBulk([][]string{
		{"len", strconv.Itoa(s.idx.Len())},
		{"level", strconv.Itoa(s.idx.Level())},
		{"inserts", strconv.FormatInt(st.Inserts, 10)},
		{"updates", strconv.FormatInt(st.Updates, 10)},
		{"deletes", strconv.FormatInt(st.Deletes, 10)},
		{"delete misses", strconv.FormatInt(st.DeleteMisses, 10)},
		{"lookups", strconv.FormatInt(st.Lookups, 10)},
		{"lookup misses", strconv.FormatInt(st.LookupMisses, 10)},
	})
	table.Render()
}
