package g4lex

import (
	"bufio"
	"fmt"
	"io"
	"unicode/utf8"
)

// regexReader is a reader that buffers as it goes so reads can be "undone".
// Using the regexp package against an io.Reader requires this unless the
// only thing needed is whether a match occurred.
//
// Implements io.ReadSeeker and a rune reader suitable for regexp.FindReaderSubmatchIndex.
type regexReader struct {
	b     []byte
	r     *bufio.Reader
	cur   int
	marks map[string]int
}

func newRegexReader(r io.Reader) *regexReader {
	return &regexReader{
		b:     make([]byte, 0),
		r:     bufio.NewReader(r),
		marks: make(map[string]int),
	}
}

func (rr *regexReader) avail() int {
	return len(rr.b) - rr.cur
}

// readBuf reads from the buffer and advances the cursor by the number of
// bytes read. If n bytes aren't available, returns all bytes that are.
func (rr *regexReader) readBuf(n int) []byte {
	limit := rr.avail()
	if n < limit {
		limit = n
	}
	read := rr.b[rr.cur : rr.cur+limit]
	rr.cur += limit
	return read
}

// readIntoBuf reads up to n bytes from the underlying reader into the
// buffer. Does not move the cursor.
func (rr *regexReader) readIntoBuf(n int) (actualRead int, err error) {
	read := make([]byte, n)
	actualRead, err = rr.r.Read(read)
	if actualRead > 0 {
		rr.b = append(rr.b, read[:actualRead]...)
	}
	return actualRead, err
}

// SearchAndAdvance applies re at the current cursor and, on a match, moves
// the cursor to just past the match, returning one string per capture group
// (group 0 is the whole match). On no match, the cursor is unchanged and a
// nil slice is returned. Returns io.EOF if no input remains at the cursor.
func (rr *regexReader) SearchAndAdvance(re regexpMatcher) ([]string, error) {
	rr.Mark("SEARCH_AND_ADVANCE")
	matchIndexes := re.FindReaderSubmatchIndex(rr)
	matches := rr.getMatches("SEARCH_AND_ADVANCE", matchIndexes)
	rr.Restore("SEARCH_AND_ADVANCE")

	if len(matches) > 0 {
		rr.Seek(int64(matchIndexes[1]), io.SeekCurrent)
		return matches, nil
	}

	// no match. was that because no input is left at the cursor?
	n, err := rr.Read(make([]byte, 1))
	rr.Restore("SEARCH_AND_ADVANCE")
	if n == 0 && err == io.EOF {
		return nil, io.EOF
	}
	if err != nil && err != io.EOF {
		return nil, err
	}

	return nil, nil
}

func (rr *regexReader) getMatches(mark string, pairs []int) []string {
	markOffset, ok := rr.marks[mark]
	if !ok {
		panic(fmt.Sprintf("invalid mark name: %q", mark))
	}
	if len(pairs) == 0 {
		return nil
	}

	matches := make([]string, len(pairs)/2)
	matches[0] = string(rr.b[markOffset+pairs[0] : markOffset+pairs[1]])
	for i := 2; i < len(pairs); i += 2 {
		left, right := pairs[i], pairs[i+1]
		if left != -1 && right != -1 {
			matches[i/2] = string(rr.b[markOffset+left : markOffset+right])
		}
	}
	return matches
}

// ReadRune implements io.RuneReader.
func (rr *regexReader) ReadRune() (r rune, size int, err error) {
	charBytes := make([]byte, 1)
	n, err := rr.Read(charBytes)
	if n != 1 {
		return r, size, err
	}

	setErr := err
	firstByte := charBytes[0]
	var remBytes int
	switch {
	case firstByte>>7 == 0:
		remBytes = 0
	case firstByte>>5 == 0b110:
		remBytes = 1
	case firstByte>>4 == 0b1110:
		remBytes = 2
	case firstByte>>3 == 0b11110:
		remBytes = 3
	}

	if remBytes > 0 {
		if setErr != nil && setErr != io.EOF {
			return r, n, setErr
		}
		additional := make([]byte, remBytes)
		n, err := rr.Read(additional)
		if n != remBytes {
			if err == io.EOF {
				return r, n, fmt.Errorf("couldn't read all bytes of utf-8 character")
			}
			return r, n, err
		}
		setErr = err
		charBytes = append(charBytes, additional...)
	}

	r, size = utf8.DecodeRune(charBytes)
	missedBy := len(charBytes) - size
	if missedBy > 0 {
		rr.cur -= missedBy
	}
	return r, size, setErr
}

// Mark records the current offset under the given name for later Restore.
func (rr *regexReader) Mark(name string) {
	rr.marks[name] = rr.cur
}

// Restore seeks back to the offset recorded under name. Panics if unset.
func (rr *regexReader) Restore(name string) {
	offset, ok := rr.marks[name]
	if !ok {
		panic(fmt.Sprintf("invalid mark name: %q", name))
	}
	rr.cur = offset
}

func (rr *regexReader) Read(p []byte) (n int, err error) {
	read := rr.readBuf(len(p))
	stillNeed := len(p) - len(read)

	if stillNeed > 0 {
		actualRead, rerr := rr.readIntoBuf(stillNeed)
		err = rerr
		if actualRead > 0 {
			read = append(read, rr.readBuf(actualRead)...)
		}
	}

	n = len(read)
	copy(p, read)
	return n, err
}

// Seek moves the cursor. As the reader wraps an underlying stream of
// unknown length, io.SeekEnd is relative to the end of the bytes buffered
// so far.
func (rr *regexReader) Seek(offset int64, whence int) (int64, error) {
	var newOffset int64
	switch whence {
	case io.SeekStart:
		newOffset = offset
	case io.SeekCurrent:
		newOffset = int64(rr.cur) + offset
	case io.SeekEnd:
		newOffset = int64(len(rr.b)) + offset
	default:
		return 0, fmt.Errorf("unknown whence argument: %v", whence)
	}

	if newOffset < 0 {
		return 0, fmt.Errorf("resulting absolute offset specifies index before start of file: %d", newOffset)
	}
	if newOffset > int64(len(rr.b)) {
		newOffset = int64(len(rr.b))
	}
	rr.cur = int(newOffset)
	return newOffset, nil
}

// regexpMatcher is the subset of *regexp.Regexp that regexReader needs;
// factored out so tests can substitute a stub.
type regexpMatcher interface {
	FindReaderSubmatchIndex(r io.RuneReader) []int
}
