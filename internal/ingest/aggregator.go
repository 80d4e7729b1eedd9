package ingest

import (
	"bufio"
	"io"
	"regexp"
	"strings"
)

// maxLineSize bounds a single physical line.
const maxLineSize = 1024 * 1024

var entryStart = regexp.MustCompile(`^\p{L}+\s*(?:\(|1\.)`)

// IsEntryStart reports whether line opens a new dictionary entry: a run of
// letters followed by a parenthesized tag or a "1." sense number.
func IsEntryStart(line string) bool {
	return entryStart.MatchString(strings.TrimSpace(line))
}

// RawBlock is the joined text of one logical entry.
type RawBlock struct {
	Text  string
	Line  int // 1-indexed line the entry starts on
	Lines int // physical lines joined into Text
}

// BlockScanner groups physical lines into entry blocks. Lines are trimmed
// and joined with single spaces. Text before the first entry start is noise.
type BlockScanner struct {
	scanner *bufio.Scanner

	pending   []string
	startLine int
	lineNum   int

	block RawBlock
	noise int
}

// NewBlockScanner creates a scanner reading from r.
func NewBlockScanner(r io.Reader) *BlockScanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &BlockScanner{scanner: scanner}
}

// Scan advances to the next block. It returns false at end of input or on a
// read error, which Err reports.
func (s *BlockScanner) Scan() bool {
	for s.scanner.Scan() {
		s.lineNum++
		line := s.scanner.Text()
		if s.lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		line = strings.TrimSpace(line)

		switch {
		case IsEntryStart(line):
			flushed := s.flush()
			s.pending = append(s.pending, line)
			s.startLine = s.lineNum
			if flushed {
				return true
			}
		case line == "":
			if s.flush() {
				return true
			}
		case len(s.pending) > 0:
			s.pending = append(s.pending, line)
		default:
			s.noise++
		}
	}
	return s.flush()
}

// flush moves accumulated lines into the current block.
func (s *BlockScanner) flush() bool {
	if len(s.pending) == 0 {
		return false
	}
	s.block = RawBlock{
		Text:  strings.Join(s.pending, " "),
		Line:  s.startLine,
		Lines: len(s.pending),
	}
	s.pending = s.pending[:0]
	return true
}

// Block returns the block produced by the last successful Scan.
func (s *BlockScanner) Block() RawBlock {
	return s.block
}

// Err returns the first non-EOF read error.
func (s *BlockScanner) Err() error {
	return s.scanner.Err()
}

// Lines returns the number of physical lines read so far.
func (s *BlockScanner) Lines() int {
	return s.lineNum
}

// Noise returns the number of non-blank lines dropped outside any entry.
func (s *BlockScanner) Noise() int {
	return s.noise
}

// ReadBlocks drains r into a slice of blocks.
func ReadBlocks(r io.Reader) ([]RawBlock, error) {
	s := NewBlockScanner(r)
	var blocks []RawBlock
	for s.Scan() {
		blocks = append(blocks, s.Block())
	}
	return blocks, s.Err()
}
