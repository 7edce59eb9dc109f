package main

//go-build: CGO_ENABLED=0

import (
	"context"
	"flag"
	"net/http"

	"github.com/golang/glog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/robotalks/hidlink/pkg/bridge"
	"github.com/robotalks/hidlink/pkg/capture"
	"github.com/robotalks/hidlink/pkg/comm"
	"github.com/robotalks/hidlink/pkg/framework"
	"github.com/robotalks/hidlink/pkg/serial"
	"github.com/robotalks/hidlink/pkg/sim"
)

func init() {
	SetupFlags(flag.CommandLine)
}

func main() {
	flag.Parse()
	defer glog.Flush()
	if configFile != "" {
		if err := LoadConfigFile(flag.CommandLine, configFile); err != nil {
			glog.Exitf("load config: %v", err)
		}
	}
	if err := run(NewConfig()); err != nil {
		glog.Exit(err)
	}
}

func run(conf *Config) error {
	runner := framework.NewRunner().HandleSignals()
	defer runner.Stop()
	conn, err := conf.openConn(runner.Context())
	if err != nil {
		return err
	}
	sender := comm.NewSender(conn)
	defer sender.Close()
	sender.ResponseTimeout = conf.ResponseTimeout

	var observers []comm.Observer
	if conf.Capture != "" {
		w, err := capture.Create(conf.Capture)
		if err != nil {
			return err
		}
		defer w.Close()
		observers = append(observers, w)
	}
	if conf.MetricsAddr != "" {
		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector())
		observers = append(observers, comm.NewMetrics(comm.WithRegistry(registry)))
		runner.Go(framework.NamedRun("metrics", metricsServer(conf.MetricsAddr, registry)))
	}
	sender.Observer = comm.Observers(observers...)

	conf.Bridge.Meta.Port = conf.Serial.Name
	if conf.Simulate {
		conf.Bridge.Meta.Port = "simulated"
	}
	b, err := bridge.New(conf.Bridge, sender)
	if err != nil {
		runner.Stop()
		runner.Wait()
		return err
	}
	return runner.Go(b).Wait()
}

func (c *Config) openConn(ctx context.Context) (comm.Conn, error) {
	if c.Simulate {
		glog.Info("using simulated device")
		return serial.NewPort(sim.NewDevice()), nil
	}
	return serial.Open(ctx, c.Serial)
}

func metricsServer(addr string, gatherer prometheus.Gatherer) framework.RunFunc {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	server := &http.Server{Addr: addr, Handler: mux}
	return func(ctx context.Context) error {
		glog.Infof("serving metrics on %s", addr)
		err := framework.RunWithContextCloser(ctx, server, server.ListenAndServe)
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
