// Package lib acts as a library for modules that do not fit
// strictly into other layers.
//
// It currently holds background job processing (using Redis/Asynq)
// for product change events emitted by the command side.
package lib
