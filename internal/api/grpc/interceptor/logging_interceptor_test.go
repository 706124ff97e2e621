package interceptor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestRecovery(t *testing.T) {
	info := &grpc.UnaryServerInfo{FullMethod: "/roofbox.Test/Boom"}
	_, err := Recovery()(context.Background(), nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		panic("kaputt")
	})
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestLoggingPassesThrough(t *testing.T) {
	info := &grpc.UnaryServerInfo{FullMethod: "/roofbox.Test/Echo"}
	resp, err := Logging()(context.Background(), "ping", info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return req, nil
	})
	assert.NoError(t, err)
	assert.Equal(t, "ping", resp)
}
