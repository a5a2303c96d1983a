package core

import (
	"errors"
	"fmt"
)

var (
	ErrTransport        = errors.New("transport")
	ErrMalformedRecord  = errors.New("malformed record")
	ErrDestinationWrite = errors.New("destination write")
)

// TransportError is a network or authorization failure talking to the source
// service.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrTransport, e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// MalformedRecordError reports a fetched record missing a required field.
type MalformedRecordError struct {
	Field    string
	RecordID string
}

func (e *MalformedRecordError) Error() string {
	if e.RecordID == "" {
		return fmt.Sprintf("%s: missing required field %q", ErrMalformedRecord, e.Field)
	}
	return fmt.Sprintf("%s: record %q is missing required field %q", ErrMalformedRecord, e.RecordID, e.Field)
}

func (e *MalformedRecordError) Is(target error) bool { return target == ErrMalformedRecord }

// DestinationWriteError is a quota, permission or path failure at the sink.
type DestinationWriteError struct {
	Destination string
	Err         error
}

func (e *DestinationWriteError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrDestinationWrite, e.Destination, e.Err)
}

func (e *DestinationWriteError) Unwrap() error { return e.Err }

func (e *DestinationWriteError) Is(target error) bool { return target == ErrDestinationWrite }
