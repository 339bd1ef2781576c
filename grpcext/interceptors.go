package grpcext

import (
	"context"
	"net/http"

	"google.golang.org/grpc"

	"github.com/Harshal6927/advanced-alchemy/config"
	"github.com/Harshal6927/advanced-alchemy/logger"
	"github.com/Harshal6927/advanced-alchemy/session"
)

// finalizeStatus converts the handler outcome into the status the session
// maker resolves against: successes finalize like 2xx responses, handler
// errors like failed requests
func finalizeStatus(err error) int {
	if err != nil {
		return http.StatusInternalServerError
	}
	return http.StatusOK
}

// SessionUnaryInterceptor injects a session under the default session key
func SessionUnaryInterceptor(maker *session.Maker, log logger.Logger) grpc.UnaryServerInterceptor {
	return SessionUnaryInterceptorWithKey(maker, config.DefaultSessionKey, log)
}

// SessionUnaryInterceptorWithKey injects a lazily created session into the
// handler context under key and resolves it from the handler outcome. Errors
// returned by the handler are translated into gRPC status errors
func SessionUnaryInterceptorWithKey(maker *session.Maker, key string, log logger.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		holder := &sessionHolder{maker: maker}
		ctx = context.WithValue(ctx, holderKey(key), holder)

		resp, err := handler(ctx, req)

		if tx := holder.take(); tx != nil {
			if ferr := maker.Finalize(tx, finalizeStatus(err)); ferr != nil {
				log.Error("Failed to finalize session for ", info.FullMethod, ": ", ferr)
			}
		}
		if err != nil {
			return resp, StatusError(err)
		}
		return resp, nil
	}
}

// SessionStreamInterceptor injects a session under the default session key
func SessionStreamInterceptor(maker *session.Maker, log logger.Logger) grpc.StreamServerInterceptor {
	return SessionStreamInterceptorWithKey(maker, config.DefaultSessionKey, log)
}

// SessionStreamInterceptorWithKey injects a lazily created session into the
// stream context under key and resolves it once the handler returns
func SessionStreamInterceptorWithKey(maker *session.Maker, key string, log logger.Logger) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		holder := &sessionHolder{maker: maker}
		ctx := context.WithValue(ss.Context(), holderKey(key), holder)

		err := handler(srv, &wrappedStream{ServerStream: ss, ctx: ctx})

		if tx := holder.take(); tx != nil {
			if ferr := maker.Finalize(tx, finalizeStatus(err)); ferr != nil {
				log.Error("Failed to finalize session for ", info.FullMethod, ": ", ferr)
			}
		}
		if err != nil {
			return StatusError(err)
		}
		return nil
	}
}

// wrappedStream overrides the stream context so handlers see the session
type wrappedStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (w *wrappedStream) Context() context.Context {
	return w.ctx
}
