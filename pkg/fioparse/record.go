package fioparse

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Field is one key/value pair extracted from a report.
type Field struct {
	Key   string
	Value string
}

// Record is an insertion-ordered set of fields extracted from one report.
// Keys are unique; order is the order fields were first emitted by the
// parser, and consumers rely on it (first READ: line wins downstream).
type Record struct {
	fields []Field
	index  map[string]int
}

// NewRecord creates an empty record.
func NewRecord() *Record {
	return &Record{index: make(map[string]int)}
}

// Set adds a field, or overwrites the value in place if the key exists.
// Insertion order is preserved either way.
func (r *Record) Set(key, value string) {
	if i, ok := r.index[key]; ok {
		r.fields[i].Value = value
		return
	}
	r.index[key] = len(r.fields)
	r.fields = append(r.fields, Field{Key: key, Value: value})
}

// Get returns the value for key and whether it was present.
func (r *Record) Get(key string) (string, bool) {
	i, ok := r.index[key]
	if !ok {
		return "", false
	}
	return r.fields[i].Value, true
}

// First returns the value of the first key in keys that is present.
func (r *Record) First(keys ...string) (key, value string, ok bool) {
	for _, k := range keys {
		if v, present := r.Get(k); present {
			return k, v, true
		}
	}
	return "", "", false
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return len(r.fields)
}

// Fields returns the fields in insertion order. The slice is shared with
// the record; callers must not modify it.
func (r *Record) Fields() []Field {
	return r.fields
}

// WriteTo serializes the record as one "key = value" line per field.
func (r *Record) WriteTo(w io.Writer) (int64, error) {
	var n int64
	for _, f := range r.fields {
		c, err := fmt.Fprintf(w, "%s = %s\n", f.Key, f.Value)
		n += int64(c)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// WriteAnnotated serializes like WriteTo but appends a trailing "# desc"
// comment to every key that Describe knows about.
func (r *Record) WriteAnnotated(w io.Writer) (int64, error) {
	var n int64
	for _, f := range r.fields {
		var c int
		var err error
		if desc := Describe(f.Key); desc != "" {
			c, err = fmt.Fprintf(w, "%s = %s\t# %s\n", f.Key, f.Value, desc)
		} else {
			c, err = fmt.Fprintf(w, "%s = %s\n", f.Key, f.Value)
		}
		n += int64(c)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// ReadRecord parses a serialized "key = value" block back into a Record.
// Trailing "# ..." comments on values are stripped. Lines without the
// " = " separator are skipped. Splitting on the spaced separator keeps
// keys containing "=" intact ("iodepth_dist_>=64").
func ReadRecord(r io.Reader) (*Record, error) {
	rec := NewRecord()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		key, value, ok := strings.Cut(line, " = ")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if comment := strings.Index(value, "#"); comment >= 0 {
			value = value[:comment]
		}
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		rec.Set(key, value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning record: %w", err)
	}
	return rec, nil
}
