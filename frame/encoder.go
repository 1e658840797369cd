package frame

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/arloliu/coltab/encoding"
	"github.com/arloliu/coltab/errs"
	"github.com/arloliu/coltab/internal/collision"
	"github.com/arloliu/coltab/internal/options"
	"github.com/arloliu/coltab/internal/pool"
	"github.com/arloliu/coltab/section"
	"github.com/arloliu/coltab/table"
)

// Encoder builds a coltab buffer one column at a time.
//
// Value blocks are accumulated in a pooled payload buffer as columns are added;
// Finish lays out the directory, aligns numeric blocks and copies everything
// into a fresh buffer owned by the caller.
//
// Note: The Encoder is NOT thread-safe and NOT reusable. After Finish, create
// a new encoder.
type Encoder struct {
	*EncoderConfig

	engine  section.EndianEngine
	entries section.Directory
	spans   []span // payload span of each entry's value block
	names   *collision.Tracker
	payload *pool.ByteBuffer

	// column encoders are created lazily and reused across columns
	intEnc   *encoding.FixedEncoder[int64]
	floatEnc *encoding.FixedEncoder[float64]
	strEnc   *encoding.StringEncoder

	rows     int // length of the first column, checked in strict mode
	finished bool
}

type span struct {
	start int
	size  int
}

// NewEncoder creates an encoder.
//
// Returns:
//   - *Encoder: new encoder ready for AddColumn
//   - error: configuration error if an option is invalid
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	config := newEncoderConfig()
	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}

	return &Encoder{
		EncoderConfig: config,
		engine:        section.Engine(),
		entries:       make(section.Directory, 0, config.capacity),
		spans:         make([]span, 0, config.capacity),
		names:         collision.NewTracker(config.capacity),
		payload:       pool.GetColumnBuffer(),
	}, nil
}

// AddColumn appends col as the next column.
//
// A failed AddColumn leaves the encoder unchanged, so the caller may skip the
// column and continue, or stop and call Finish to release resources.
//
// Returns:
//   - error: ErrUnsupportedType naming the column if its values are not
//     []int64, []float64 or []string; ErrEmptyColumnName; ErrDuplicateColumn;
//     ErrRaggedTable in strict mode; ErrBufferTooLarge if a count or length
//     exceeds 32 bits; ErrEncoderFinished after Finish
func (e *Encoder) AddColumn(col table.Column) error {
	if e.finished {
		return errs.ErrEncoderFinished
	}

	dtype, ok := col.DType()
	if !ok {
		return fmt.Errorf("%w: column %q holds %T", errs.ErrUnsupportedType, col.Name, col.Values)
	}

	if uint64(len(col.Name)) > section.MaxNameLength {
		return fmt.Errorf("%w: column name of %d bytes", errs.ErrBufferTooLarge, len(col.Name))
	}

	count := col.Len()
	if uint64(count) > section.MaxElementCount {
		return fmt.Errorf("%w: column %q has %d elements", errs.ErrBufferTooLarge, col.Name, count)
	}

	if e.strictLength && len(e.entries) > 0 && count != e.rows {
		return fmt.Errorf("%w: column %q has %d rows, expected %d", errs.ErrRaggedTable, col.Name, count, e.rows)
	}

	block, err := e.encodeBlock(col)
	if err != nil {
		return fmt.Errorf("column %q: %w", col.Name, err)
	}

	if _, err := e.names.Track(col.Name); err != nil {
		return err
	}

	if len(e.entries) == 0 {
		e.rows = count
	}

	e.spans = append(e.spans, span{start: e.payload.Len(), size: len(block)})
	e.payload.MustWrite(block)
	e.entries = append(e.entries, section.NewDirectoryEntry(col.Name, dtype, count))

	return nil
}

// encodeBlock encodes the value block of col. The returned slice is owned by
// one of the column encoders and valid until the next call.
func (e *Encoder) encodeBlock(col table.Column) ([]byte, error) {
	switch values := col.Values.(type) {
	case []int64:
		if e.intEnc == nil {
			e.intEnc = encoding.NewFixedEncoder[int64](e.engine)
		}
		e.intEnc.Reset()
		e.intEnc.WriteSlice(values)

		return e.intEnc.Bytes(), nil
	case []float64:
		if e.floatEnc == nil {
			e.floatEnc = encoding.NewFixedEncoder[float64](e.engine)
		}
		e.floatEnc.Reset()
		e.floatEnc.WriteSlice(values)

		return e.floatEnc.Bytes(), nil
	case []string:
		if e.strEnc == nil {
			e.strEnc = encoding.NewStringEncoder(e.engine)
		}
		e.strEnc.Reset()
		if err := e.strEnc.WriteSlice(values); err != nil {
			return nil, err
		}

		return e.strEnc.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %T", errs.ErrUnsupportedType, col.Values)
	}
}

// ColumnCount returns the number of columns added so far.
func (e *Encoder) ColumnCount() int {
	return len(e.entries)
}

// Finish lays out the buffer and releases pooled resources.
//
// Finish must be called exactly once, also after a failed AddColumn; the
// encoder is unusable afterwards.
//
// Returns:
//   - []byte: the encoded buffer, owned by the caller
//   - error: ErrBufferTooLarge if the buffer would exceed 32-bit offsets,
//     ErrEncoderFinished on a second call
func (e *Encoder) Finish() ([]byte, error) {
	if e.finished {
		return nil, errs.ErrEncoderFinished
	}
	defer e.release()

	offset := e.entries.Size()
	for i := range e.entries {
		if e.entries[i].DType.IsNumeric() {
			offset = section.AlignOffset(offset)
		}

		if uint64(offset) > section.MaxOffset {
			return nil, fmt.Errorf("%w: value block of column %q starts at %d",
				errs.ErrBufferTooLarge, e.entries[i].Name, offset)
		}

		e.entries[i].Offset = offset
		offset += e.spans[i].size
	}

	if uint64(offset) > section.MaxOffset {
		return nil, fmt.Errorf("%w: %d bytes", errs.ErrBufferTooLarge, offset)
	}

	// make zeroes the alignment padding
	buf := make([]byte, offset)
	e.entries.WriteToSlice(buf)

	payload := e.payload.Bytes()
	for i, entry := range e.entries {
		s := e.spans[i]
		copy(buf[entry.Offset:], payload[s.start:s.start+s.size])
	}

	e.logger.Debug("encoded table",
		zap.Int("columns", len(e.entries)),
		zap.Int("bytes", len(buf)),
		zap.Bool("name_hash_collision", e.names.HasCollision()),
	)

	return buf, nil
}

func (e *Encoder) release() {
	e.finished = true

	if e.payload != nil {
		pool.PutColumnBuffer(e.payload)
		e.payload = nil
	}

	if e.intEnc != nil {
		e.intEnc.Finish()
	}
	if e.floatEnc != nil {
		e.floatEnc.Finish()
	}
	if e.strEnc != nil {
		e.strEnc.Finish()
	}
}

// Encode serializes t into a new buffer, preserving column order.
//
// Returns:
//   - []byte: the encoded buffer
//   - error: ErrNilTable if t is nil, or the first AddColumn or Finish error,
//     see Encoder
func Encode(t *table.Table, opts ...EncoderOption) ([]byte, error) {
	if t == nil {
		return nil, errs.ErrNilTable
	}

	enc, err := NewEncoder(append([]EncoderOption{WithInitialCapacity(t.NumColumns())}, opts...)...)
	if err != nil {
		return nil, err
	}

	for _, col := range t.Columns() {
		if err := enc.AddColumn(col); err != nil {
			enc.release()
			return nil, err
		}
	}

	return enc.Finish()
}
