// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app assembles the pieces shared by the replisync binaries: the
// sync registry with its domains and the reported build version.
package app
