package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"pumpjack_simulator/internal/config"
	"pumpjack_simulator/internal/engine"
	"pumpjack_simulator/internal/logger"
	"pumpjack_simulator/internal/models"
	"pumpjack_simulator/internal/service"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	setSuffix            = "/set"
	publishTimeout       = 250 * time.Millisecond
	subscribeTimeout     = 5 * time.Second
	connectTimeout       = 10 * time.Second
	maxReconnectInterval = time.Minute
	disconnectQuiesceMS  = 250
)

var (
	ErrUnknownTag      = errors.New("unknown tag")
	ErrNotWritable     = errors.New("tag is not writable")
	ErrInvalidPayload  = errors.New("invalid tag payload")
	ErrConnectTimedOut = errors.New("mqtt connect timed out")
)

// Client is the part of mqtt.Client the bridge needs.
type Client interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Subscribe(topic string, qos byte, callback mqtt.MessageHandler) mqtt.Token
}

// TargetWriter receives setpoint writes coming from the broker.
type TargetWriter interface {
	SetTarget(ctx context.Context, p service.TargetParams) error
}

// TagValue is the payload published for every tag.
type TagValue struct {
	Value float64   `json:"value"`
	TS    time.Time `json:"ts"`
}

// Bridge publishes a fixed subset of snapshot fields as MQTT tags and applies
// writes to writable tags through the pump service.
type Bridge struct {
	prefix   string
	qos      byte
	tags     []string
	writable map[string]engine.TargetParam

	pump TargetWriter
	log  *logger.Logger
	now  func() time.Time

	mu     sync.RWMutex
	client Client
	paho   mqtt.Client
}

// New validates the tag configuration. No connection is made until Connect or Attach.
func New(cfg config.MQTTConfig, pump TargetWriter, log *logger.Logger) (*Bridge, error) {
	if log == nil {
		log = logger.Nop()
	}
	known := engine.Fields(models.PumpState{})

	tags := make([]string, 0, len(cfg.Tags))
	for _, t := range cfg.Tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if _, ok := known[t]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTag, t)
		}
		tags = append(tags, t)
	}

	writable := make(map[string]engine.TargetParam, len(cfg.Writable))
	for _, t := range cfg.Writable {
		t = strings.ToLower(strings.TrimSpace(t))
		p, err := engine.ParseTargetParam(t)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrNotWritable, t)
		}
		writable[t] = p
	}

	return &Bridge{
		prefix:   strings.TrimSuffix(cfg.TopicPrefix, "/"),
		qos:      cfg.QoS,
		tags:     tags,
		writable: writable,
		pump:     pump,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// Connect dials the broker with auto-reconnect. Writable tags are
// (re)subscribed on every successful connection.
func (b *Bridge) Connect(ctx context.Context, cfg config.MQTTConfig) error {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	opts.SetUsername(cfg.Username)
	opts.SetPassword(cfg.Password)
	opts.SetKeepAlive(cfg.KeepAlive)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetMaxReconnectInterval(maxReconnectInterval)
	opts.SetOnConnectHandler(func(c mqtt.Client) {
		b.log.Infow("mqtt_connected", "broker", cfg.Broker, "client_id", cfg.ClientID)
		if err := b.subscribe(ctx, c); err != nil {
			b.log.Errorw("mqtt_subscribe_failed", "err", err)
		}
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		b.log.Warnw("mqtt_connection_lost", "broker", cfg.Broker, "err", err)
	})

	c := mqtt.NewClient(opts)
	b.mu.Lock()
	b.client, b.paho = c, c
	b.mu.Unlock()

	token := c.Connect()
	if !token.WaitTimeout(connectTimeout) {
		// ConnectRetry keeps trying in the background
		b.log.Warnw("mqtt_connect_pending", "broker", cfg.Broker, "err", ErrConnectTimedOut)
		return nil
	}
	return token.Error()
}

// Attach uses an existing client and subscribes the writable tags.
func (b *Bridge) Attach(ctx context.Context, c Client) error {
	b.mu.Lock()
	b.client = c
	b.mu.Unlock()
	return b.subscribe(ctx, c)
}

// Close disconnects a client created by Connect.
func (b *Bridge) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.paho != nil {
		b.paho.Disconnect(disconnectQuiesceMS)
		b.paho = nil
	}
	b.client = nil
}

// Topic returns the topic a tag is published on.
func (b *Bridge) Topic(tag string) string {
	return b.prefix + "/" + tag
}

// OnSnapshot publishes every configured tag from one tick.
func (b *Bridge) OnSnapshot(_ context.Context, st models.PumpState) {
	b.mu.RLock()
	c := b.client
	b.mu.RUnlock()
	if c == nil {
		return
	}
	if cc, ok := c.(interface{ IsConnected() bool }); ok && !cc.IsConnected() {
		return
	}

	fields := engine.Fields(st)
	ts := b.now()
	for _, tag := range b.tags {
		v, err := engine.FieldFloat(fields[tag])
		if err != nil {
			b.log.Errorw("tag_coerce_failed", "tag", tag, "err", err)
		}
		payload, err := json.Marshal(TagValue{Value: v, TS: ts})
		if err != nil {
			b.log.Errorw("tag_encode_failed", "tag", tag, "err", err)
			continue
		}
		token := c.Publish(b.Topic(tag), b.qos, false, payload)
		if !token.WaitTimeout(publishTimeout) {
			b.log.Debugw("tag_publish_pending", "tag", tag)
			continue
		}
		if err := token.Error(); err != nil {
			b.log.Warnw("tag_publish_failed", "tag", tag, "err", err)
		}
	}
}

func (b *Bridge) subscribe(ctx context.Context, c Client) error {
	for tag := range b.writable {
		topic := b.Topic(tag) + setSuffix
		token := c.Subscribe(topic, b.qos, b.writeHandler(ctx, tag))
		if !token.WaitTimeout(subscribeTimeout) {
			return fmt.Errorf("subscribe %s: timed out", topic)
		}
		if err := token.Error(); err != nil {
			return fmt.Errorf("subscribe %s: %w", topic, err)
		}
		b.log.Infow("tag_writable", "topic", topic)
	}
	return nil
}

func (b *Bridge) writeHandler(ctx context.Context, tag string) mqtt.MessageHandler {
	return func(_ mqtt.Client, msg mqtt.Message) {
		if err := b.Write(ctx, tag, msg.Payload()); err != nil {
			b.log.Warnw("tag_write_rejected", "topic", msg.Topic(), "err", err)
		}
	}
}

// Write applies a payload to a writable tag. The payload is either a bare
// number or a TagValue document.
func (b *Bridge) Write(ctx context.Context, tag string, payload []byte) error {
	param, ok := b.writable[tag]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotWritable, tag)
	}
	v, err := parsePayload(payload)
	if err != nil {
		return err
	}
	if b.pump == nil {
		return fmt.Errorf("%w: no pump service wired", ErrNotWritable)
	}
	return b.pump.SetTarget(ctx, service.TargetParams{Parameter: string(param), Value: v})
}

func parsePayload(payload []byte) (float64, error) {
	raw := strings.TrimSpace(string(payload))
	if strings.HasPrefix(raw, "{") {
		var doc struct {
			Value *float64 `json:"value"`
		}
		if err := json.Unmarshal([]byte(raw), &doc); err != nil || doc.Value == nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidPayload, raw)
		}
		return *doc.Value, nil
	}
	v, err := engine.FieldFloat(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPayload, raw)
	}
	return v, nil
}
