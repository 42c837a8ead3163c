// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"fmt"
	"runtime"

	"github.com/bitmark-inc/logger"
)

// Invariant - report a broken internal invariant
//
// a binary built with "-tags debug" panics; otherwise the message is
// logged at critical level and processing continues
func Invariant(log *logger.L, format string, arguments ...interface{}) {
	message := fmt.Sprintf(format, arguments...)
	if _, file, line, ok := runtime.Caller(1); ok {
		message = fmt.Sprintf("(%q:%d) %s", file, line, message)
	}

	if debugAssertions {
		panic("invariant: " + message)
	}

	if nil == log {
		fmt.Printf("*** invariant: %s\n", message)
		return
	}
	log.Criticalf("invariant: %s", message)
}

// PanicIfError - abort start-up on an unrecoverable error
//
// only for use before any peer traffic is accepted
func PanicIfError(message string, err error) {
	if nil == err {
		return
	}
	s := fmt.Sprintf("%s failed with error: %v", message, err)
	logger.Criticalf("%s", s)
	panic(s)
}
