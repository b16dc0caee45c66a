package match

import (
	"context"

	"google.golang.org/grpc"
)

// MatchServiceClient calls MatchService over a client connection.
// Every call is sent with the JSON content-subtype.
type MatchServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewMatchServiceClient(cc grpc.ClientConnInterface) *MatchServiceClient {
	return &MatchServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *MatchServiceClient) RegisterOrUpdate(ctx context.Context, in *RegisterOrUpdateRequest, opts ...grpc.CallOption) (*RegisterOrUpdateResponse, error) {
	return invoke[RegisterOrUpdateResponse](ctx, c.cc, MethodRegisterOrUpdate, in, opts)
}

func (c *MatchServiceClient) GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*GetProfileResponse, error) {
	return invoke[GetProfileResponse](ctx, c.cc, MethodGetProfile, in, opts)
}

func (c *MatchServiceClient) RequestNextCandidate(ctx context.Context, in *RequestNextCandidateRequest, opts ...grpc.CallOption) (*RequestNextCandidateResponse, error) {
	return invoke[RequestNextCandidateResponse](ctx, c.cc, MethodRequestNextCandidate, in, opts)
}

func (c *MatchServiceClient) SubmitAction(ctx context.Context, in *SubmitActionRequest, opts ...grpc.CallOption) (*SubmitActionResponse, error) {
	return invoke[SubmitActionResponse](ctx, c.cc, MethodSubmitAction, in, opts)
}

func (c *MatchServiceClient) ListInterests(ctx context.Context, in *ListInterestsRequest, opts ...grpc.CallOption) (*ListInterestsResponse, error) {
	return invoke[ListInterestsResponse](ctx, c.cc, MethodListInterests, in, opts)
}

func (c *MatchServiceClient) ListMatches(ctx context.Context, in *ListMatchesRequest, opts ...grpc.CallOption) (*ListMatchesResponse, error) {
	return invoke[ListMatchesResponse](ctx, c.cc, MethodListMatches, in, opts)
}

func (c *MatchServiceClient) CountMatches(ctx context.Context, in *CountMatchesRequest, opts ...grpc.CallOption) (*CountMatchesResponse, error) {
	return invoke[CountMatchesResponse](ctx, c.cc, MethodCountMatches, in, opts)
}
