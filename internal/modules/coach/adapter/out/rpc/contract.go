package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey  = "coach"
	serviceName   = "lockedin.coach.v1.Coach"
	jsonCodecName = "json"
	methodAdvise  = "/" + serviceName + "/Advise"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "LOCKEDIN_COACH",
	MagicCookieValue: "lockedin",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type EligibilityContext struct {
	Schema     int     `json:"schema"`
	Total      float64 `json:"total"`
	Percentage float64 `json:"percentage"`
	Grade      string  `json:"grade"`
}

type SubjectContext struct {
	Name           string  `json:"name"`
	Percentage     float64 `json:"percentage"`
	TotalConducted int     `json:"total_conducted"`
	TotalAttended  int     `json:"total_attended"`
	RiskZone       string  `json:"risk_zone"`
	Recovery       int     `json:"recovery"`
}

type PlannerContext struct {
	TotalTasks     int `json:"total_tasks"`
	CompletedTasks int `json:"completed_tasks"`
	CompletionRate int `json:"completion_rate"`
}

type StudyContext struct {
	SessionsToday int `json:"sessions_today"`
	TotalMinutes  int `json:"total_minutes"`
	CurrentStreak int `json:"current_streak"`
}

type AdviseRequest struct {
	Message     string              `json:"message"`
	Prompt      string              `json:"prompt"`
	Eligibility *EligibilityContext `json:"eligibility,omitempty"`
	Attendance  []SubjectContext    `json:"attendance"`
	Planner     PlannerContext      `json:"planner"`
	Study       StudyContext        `json:"study_mode"`
}

type AdviseResponse struct {
	Response string `json:"response"`
}

type CoachServer interface {
	Advise(ctx context.Context, in *AdviseRequest) (*AdviseResponse, error)
}

type CoachClient interface {
	Advise(ctx context.Context, in *AdviseRequest) (*AdviseResponse, error)
}

type coachClient struct {
	conn *grpc.ClientConn
}

func NewCoachClient(conn *grpc.ClientConn) CoachClient {
	return &coachClient{conn: conn}
}

func (c *coachClient) Advise(ctx context.Context, in *AdviseRequest) (*AdviseResponse, error) {
	out := &AdviseResponse{}
	if err := c.conn.Invoke(ctx, methodAdvise, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterCoachServer(server grpc.ServiceRegistrar, impl CoachServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*CoachServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "Advise",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &AdviseRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.Advise(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodAdvise}
					handler := func(ctx context.Context, req any) (any, error) {
						inReq, ok := req.(*AdviseRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.Advise(ctx, inReq)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
		},
		Streams: []grpc.StreamDesc{},
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl CoachServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterCoachServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewCoachClient(conn), nil
}

func PluginMap(impl CoachServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
