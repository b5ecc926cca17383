// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LimitError GenericError
type NotFoundError GenericError
type PreconditionError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	AlreadyInitialised           = ExistsError("already initialised")
	AlreadyMigrated              = ExistsError("state is already migrated")
	BudgetExceeded               = LimitError("call exceeded its compute budget")
	CallAborted                  = ProcessError("call aborted")
	CertificateFileAlreadyExists = ExistsError("certificate file already exists")
	ContainerInUse               = ExistsError("fresh container already holds data")
	ConfigurationFileNotFound    = NotFoundError("configuration file not found")
	ConfigurationNotTable        = InvalidError("configuration must return a table")
	DatabaseIsNotSet             = ProcessError("database is not set")
	DatabaseVersionTooNew        = RecordError("database was written by a newer version")
	DepositMismatch              = PreconditionError("attached deposit is not equal to the price")
	IdentifierInUse              = ExistsError("derived identifier is held by a live record")
	InvalidAllocation            = InvalidError("invalid identifier allocation strategy")
	InvalidAuthority             = InvalidError("caller is not the deploying authority")
	InvalidCount                 = InvalidError("invalid count")
	InvalidFileName              = InvalidError("file name must not contain a directory")
	InvalidIpAddress             = InvalidError("invalid IP address")
	InvalidItem                  = InvalidError("invalid item")
	InvalidPath                  = InvalidError("path is not a valid directory")
	InvalidPrice                 = InvalidError("invalid price")
	InvalidPrefix                = InvalidError("invalid container prefix")
	InvalidQuantity              = InvalidError("quantity must be greater than zero")
	InvalidSeller                = InvalidError("invalid seller")
	InvalidStrategy              = InvalidError("invalid migration strategy")
	KeyFileAlreadyExists         = ExistsError("key file already exists")
	MalformedRecord              = RecordError("malformed record")
	MalformedSlot                = RecordError("malformed versioned slot")
	MalformedState               = RecordError("state does not match any known layout")
	MissingParameters            = InvalidError("missing parameters")
	NoPriorState                 = NotFoundError("no prior state to migrate")
	NotAvailableInReadOnly       = ProcessError("not available in read only mode")
	NotInitialised               = NotFoundError("not initialised")
	NotMigrated                  = PreconditionError("state must be migrated first")
	PriceOverflow                = InvalidError("price exceeds 128 bits")
	RateLimiting                 = LimitError("rate limiting")
	RecordNotFound               = NotFoundError("sale not found")
	SaleAlreadySold              = PreconditionError("sale already sold")
	SlotVersionTooNew            = RecordError("slot version is newer than the running code")
	WriteInView                  = ProcessError("write attempted in a read only view")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string       { return string(e) }
func (e InvalidError) Error() string      { return string(e) }
func (e LimitError) Error() string        { return string(e) }
func (e NotFoundError) Error() string     { return string(e) }
func (e PreconditionError) Error() string { return string(e) }
func (e ProcessError) Error() string      { return string(e) }
func (e RecordError) Error() string       { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool       { var x ExistsError; return errors.As(e, &x) }
func IsErrInvalid(e error) bool      { var x InvalidError; return errors.As(e, &x) }
func IsErrLimit(e error) bool        { var x LimitError; return errors.As(e, &x) }
func IsErrNotFound(e error) bool     { var x NotFoundError; return errors.As(e, &x) }
func IsErrPrecondition(e error) bool { var x PreconditionError; return errors.As(e, &x) }
func IsErrProcess(e error) bool      { var x ProcessError; return errors.As(e, &x) }
func IsErrRecord(e error) bool       { var x RecordError; return errors.As(e, &x) }
