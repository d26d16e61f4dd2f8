// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides the CUE parsing helpers shared by the task file
// loader and the application configuration.
//
// Parsing follows three steps:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify it with the schema definition
//  3. Validate and decode (or walk) the unified value
//
// Struct decoding loses field order, so callers that need declaration order
// (task listings) walk the unified value with StringFields instead.
package cueutil
