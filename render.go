package skipindex

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// Render writes a per-level listing of the index to w, top level first.
// Each row lists the entries linked at that level as key:value; pairs.
func (idx *Index[K, V]) Render(w io.Writer) {
	idx.mu.RLock()
	rows := idx.levelRows()
	idx.mu.RUnlock()

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Level", "Nodes", "Entries"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
}

func (idx *Index[K, V]) levelRows() [][]string {
	top := idx.Level()
	rows := make([][]string, 0, top+1)
	for i := top; i >= 0; i-- {
		var sb strings.Builder
		count := 0
		for n := idx.head.next(i); n != nil; n = n.next(i) {
			fmt.Fprintf(&sb, "%v:%v;", n.key, n.value())
			count++
		}
		rows = append(rows, []string{strconv.Itoa(i), strconv.Itoa(count), sb.String()})
	}
	return rows
}
