package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-replisync/internal/replica"
	"github.com/MKhiriev/go-replisync/internal/store"
	"github.com/MKhiriev/go-replisync/models"
)

// NewQuery builds a [Query] from typed handlers. Params are decoded into P
// once per call; local items are encoded to JSON. local may be nil.
func NewQuery[P, I any](
	local func(ctx context.Context, r replica.Reader, params P) ([]I, error),
	remote func(ctx context.Context, tx store.Tx, params P) ([]models.Entry, error),
) Query {
	q := Query{}

	if remote != nil {
		q.Remote = func(ctx context.Context, tx store.Tx, raw json.RawMessage) ([]models.Entry, error) {
			params, err := DecodeParams[P](raw)
			if err != nil {
				return nil, err
			}
			return remote(ctx, tx, params)
		}
	}

	if local != nil {
		q.Local = func(ctx context.Context, r replica.Reader, raw json.RawMessage) ([]json.RawMessage, error) {
			params, err := DecodeParams[P](raw)
			if err != nil {
				return nil, err
			}

			items, err := local(ctx, r, params)
			if err != nil {
				return nil, err
			}

			out := make([]json.RawMessage, 0, len(items))
			for _, item := range items {
				b, err := json.Marshal(item)
				if err != nil {
					return nil, fmt.Errorf("error encoding query item: %w", err)
				}
				out = append(out, b)
			}
			return out, nil
		}
	}

	return q
}

// NewMutation builds a [Mutation] from typed handlers. Args are decoded
// into P once per call. local may be nil.
func NewMutation[P any](
	local func(ctx context.Context, w replica.Writer, args P) error,
	remote func(ctx context.Context, tx store.Tx, args P) error,
) Mutation {
	m := Mutation{}

	if remote != nil {
		m.Remote = func(ctx context.Context, tx store.Tx, raw json.RawMessage) error {
			args, err := DecodeParams[P](raw)
			if err != nil {
				return err
			}
			return remote(ctx, tx, args)
		}
	}

	if local != nil {
		m.Local = func(ctx context.Context, w replica.Writer, raw json.RawMessage) error {
			args, err := DecodeParams[P](raw)
			if err != nil {
				return err
			}
			return local(ctx, w, args)
		}
	}

	return m
}

// DecodeParams decodes raw into P. Empty and null input yield the zero P.
func DecodeParams[P any](raw json.RawMessage) (P, error) {
	var params P

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return params, nil
	}

	if err := json.Unmarshal(trimmed, &params); err != nil {
		return params, fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	return params, nil
}
