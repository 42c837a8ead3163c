// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package peers - shared metadata for the live peer set
//
// the network manager adds and removes entries as sessions come and
// go; other components read capabilities and report misbehaviour as
// reputation changes. A peer whose reputation falls to the ban
// threshold is banned for a while and its ID is queued on the
// Banned() channel for the manager to disconnect. Penalties caused by
// load, rate limiting and a full request queue, cannot ban a peer on
// their own.
package peers
