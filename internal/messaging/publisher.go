package messaging

// Subject returns the subject carrying outbound frames for a connection.
func Subject(connId string) string {
	return "conn-" + connId
}

// NatsPublisher publishes frames to individual connection subjects.
type NatsPublisher struct {
	server *NatsServer
}

// NewNatsPublisher wraps a NatsServer for per-connection message delivery.
func NewNatsPublisher(server *NatsServer) *NatsPublisher {
	return &NatsPublisher{server: server}
}

func (p *NatsPublisher) PublishToConn(connId string, data []byte) error {
	return p.server.Publish(Subject(connId), data)
}

// SubscribeConn delivers every frame published for connId to handler.
func (p *NatsPublisher) SubscribeConn(connId string, handler func(data []byte)) (func(), error) {
	return p.server.Subscribe(Subject(connId), handler)
}
