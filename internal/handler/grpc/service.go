// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package grpc

import (
	"context"

	"google.golang.org/grpc"

	"github.com/MKhiriev/go-replisync/internal/logger"
	"github.com/MKhiriev/go-replisync/models"
)

// ServiceName is the fully qualified name of the sync service.
const ServiceName = "replisync.v1.Sync"

// Full method names of the sync service.
const (
	MethodPull    = "/" + ServiceName + "/Pull"
	MethodPush    = "/" + ServiceName + "/Push"
	MethodVersion = "/" + ServiceName + "/Version"
)

// VersionRequest is the empty request of the Version method.
type VersionRequest struct{}

// syncServer is the interface serviceDesc dispatches to.
type syncServer interface {
	Pull(ctx context.Context, req *models.PullRequest) (*models.PullResponse, error)
	Push(ctx context.Context, req *models.PushRequest) (*models.PushResponse, error)
	Version(ctx context.Context, req *VersionRequest) (*models.AppInfo, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*syncServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Pull", Handler: unaryHandler(MethodPull, syncServer.Pull)},
		{MethodName: "Push", Handler: unaryHandler(MethodPush, syncServer.Push)},
		{MethodName: "Version", Handler: unaryHandler(MethodVersion, syncServer.Version)},
	},
	Metadata: "replisync/v1/sync",
}

// unaryHandler adapts a typed method of syncServer to grpc.MethodDesc. The
// request is decoded inside the interceptor chain, so trace ids, logging and
// auth also cover calls with a malformed body.
func unaryHandler[Req, Resp any](fullMethod string, call func(syncServer, context.Context, *Req) (*Resp, error)) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		handler := func(ctx context.Context, req any) (any, error) {
			r := req.(*Req)
			if err := dec(r); err != nil {
				logger.FromContext(ctx).Err(err).Str("method", fullMethod).Msg("invalid JSON was passed")
				return nil, malformedStatus(err)
			}
			return call(srv.(syncServer), ctx, r)
		}

		if interceptor == nil {
			return handler(ctx, in)
		}

		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		return interceptor(ctx, in, info, handler)
	}
}
