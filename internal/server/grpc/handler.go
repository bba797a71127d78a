package grpc

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/realty/internal/catalog"
	"github.com/dmitrijs2005/realty/internal/common"
	"github.com/dmitrijs2005/realty/internal/session"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// toStruct converts v through its JSON form so Struct fields match the REST
// payloads.
func toStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return structpb.NewStruct(m)
}

func stringField(in *structpb.Struct, key string) string {
	if in == nil {
		return ""
	}
	return in.GetFields()[key].GetStringValue()
}

func (s *GRPCServer) ListListings(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	band, err := catalog.ParseBand(stringField(in, "price"))
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	items := s.store.Query(catalog.Criteria{
		Search:   stringField(in, "q"),
		Category: stringField(in, "type"),
		Band:     band,
		Admin:    session.FromContext(ctx).IsAdmin(),
	})
	if items == nil {
		items = []catalog.Property{}
	}

	out, err := toStruct(map[string]any{
		"items":   items,
		"total":   len(items),
		"loading": !s.store.Loaded(),
	})
	if err != nil {
		s.logger.Error(ctx, err.Error())
		return nil, status.Error(codes.Internal, "internal error")
	}
	return out, nil
}

func (s *GRPCServer) GetListing(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	id := int64(in.GetFields()["id"].GetNumberValue())
	if id <= 0 {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}

	p, ok := s.store.Lookup(id)
	if !ok || (!p.Active && !session.FromContext(ctx).IsAdmin()) {
		return nil, status.Error(codes.NotFound, common.ErrorNotFound.Error())
	}

	out, err := toStruct(p)
	if err != nil {
		s.logger.Error(ctx, err.Error())
		return nil, status.Error(codes.Internal, "internal error")
	}
	return out, nil
}

func (s *GRPCServer) GetStats(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	out, err := toStruct(catalog.Summarize(s.store.All()))
	if err != nil {
		s.logger.Error(ctx, err.Error())
		return nil, status.Error(codes.Internal, "internal error")
	}
	return out, nil
}

var _ CatalogServiceServer = (*GRPCServer)(nil)
