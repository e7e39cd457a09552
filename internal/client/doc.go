// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements a reference sync client.
//
// A [Client] keeps the confirmed replica received from the server, the
// mutations it has applied optimistically but the server has not yet
// acknowledged, and a view that is the confirmed replica with those pending
// mutations replayed on top. Local queries read the view.
package client
