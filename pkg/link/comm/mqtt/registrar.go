package mqtt

import (
	"context"
	"encoding/json"

	"github.com/golang/glog"

	fx "github.com/robotalks/statuspanel/pkg/framework"
	"github.com/robotalks/statuspanel/pkg/link"
	"github.com/robotalks/statuspanel/pkg/link/comm"
)

// Registrar implements link.Registrar using MQTT.
type Registrar struct {
	Queue *Queue
	Info  link.DeviceInfo

	metaJSON  []byte
	rw        *ReadWriter
	registrar comm.Registrar
}

// NewRegistrar creates a Registrar passing received commands to handler.
func NewRegistrar(brokerURL string, info link.DeviceInfo, handler link.CommandHandler) (*Registrar, error) {
	meta, err := json.Marshal(&info.Meta)
	if err != nil {
		return nil, err
	}
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	opts.SetBinaryWill(topicPrefix+info.Ref.Name()+"/meta", nil, 1, true)
	if opts.ClientID == "" {
		opts.SetClientID("panel:" + info.Ref.Name())
	}
	r := &Registrar{
		Queue:    NewQueue(opts, topicPrefix),
		Info:     info,
		metaJSON: meta,
	}
	r.Queue.OnConnect = func(*Queue) { r.onConnected() }
	r.rw = NewPacketReadWriter(r.Queue).ForDevice(info.Ref)
	r.registrar.Init(r.rw, handler)
	return r, nil
}

// SendEvent implements Registrar.
func (r *Registrar) SendEvent(ctx context.Context, msg fx.Message) error {
	if !r.Queue.Client.IsConnected() {
		return nil
	}
	return r.registrar.SendEvent(ctx, msg)
}

// Name implements Named.
func (r *Registrar) Name() string {
	return "mqtt"
}

// Run implements Runnable. The registration is retained until ctx is done.
func (r *Registrar) Run(ctx context.Context) error {
	token := r.Queue.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return err
	}
	glog.Infof("registered as %s", r.Info.Ref.Name())
	runner := fx.NewRunnerWith(ctx)
	runner.Go(r.rw, &r.registrar)
	<-runner.Context.Done()
	r.Queue.PubWith(r.Info.Ref.Name()+"/meta", nil, 1, true).Wait()
	r.Queue.Close()
	if err := runner.Wait(); err != nil && err != ctx.Err() {
		return err
	}
	return nil
}

func (r *Registrar) onConnected() {
	r.Queue.PubWith(r.Info.Ref.Name()+"/meta", r.metaJSON, 1, true)
}
