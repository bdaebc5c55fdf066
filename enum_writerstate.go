package crush

import (
	"fmt"

	"github.com/chronos-tachyon/enumhelper"
)

type writerState byte

const (
	// noStreamWriterState: no bytes have been accepted yet.
	noStreamWriterState writerState = iota

	// openStreamWriterState: bytes are being collected and nothing has
	// been written to the underlying io.Writer.
	openStreamWriterState

	// errorWriterState: our written state should be assumed corrupt, and
	// the only valid action is to Close.
	errorWriterState

	// closedWriterState: Close has been called, and the only valid action
	// is to Reset.
	closedWriterState
)

var writerStateData = []enumhelper.EnumData{
	{GoName: "noStreamWriterState", Name: "noStream"},
	{GoName: "openStreamWriterState", Name: "openStream"},
	{GoName: "errorWriterState", Name: "error"},
	{GoName: "closedWriterState", Name: "closed"},
}

func (s writerState) GoString() string {
	return enumhelper.DereferenceEnumData("writerState", writerStateData, uint(s)).GoName
}

func (s writerState) String() string {
	return enumhelper.DereferenceEnumData("writerState", writerStateData, uint(s)).Name
}

func (s writerState) MarshalJSON() ([]byte, error) {
	return enumhelper.MarshalEnumToJSON("writerState", writerStateData, uint(s))
}

var _ fmt.GoStringer = writerState(0)
var _ fmt.Stringer = writerState(0)
