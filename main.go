package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/stopwatchgif/api"
	"github.com/matt-g-everett/stopwatchgif/stream"
	"gopkg.in/yaml.v2"
)

type app struct {
	Config stream.Config
	Client mqtt.Client
}

func newApp() *app {
	a := new(app)
	a.Config = stream.DefaultConfig()
	return a
}

// readConfig overlays a YAML file on the defaults. An empty path keeps the
// built-in settings.
func (a *app) readConfig(configPath string) error {
	if configPath == "" {
		return nil
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}
	if err := yaml.UnmarshalStrict(data, &a.Config); err != nil {
		return fmt.Errorf("parse %s: %w", configPath, err)
	}
	return nil
}

func (a *app) render() error {
	stopwatch, err := stream.NewStopwatch(a.Config)
	if err != nil {
		return err
	}

	frames, err := stream.NewController(stopwatch, stopwatch.NewContext(), a.Config.Animation.ProgressEvery).Run()
	if err != nil {
		return err
	}

	path := a.Config.Output.Path
	log.Printf("Saving animation to %s...", path)
	encoder := stream.NewEncoder(stopwatch.Palette(), a.Config.Output.DelayMs)
	if err := encoder.WriteFile(path, frames); err != nil {
		return err
	}
	log.Printf("Animation saved to %s", path)

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	log.Printf("File size: %.2f KB", float64(info.Size())/1024)
	return nil
}

func (a *app) publish() error {
	options := mqtt.NewClientOptions().
		AddBroker(a.Config.Mqtt.URL).
		SetClientID("stopwatchgif").
		SetUsername(a.Config.Mqtt.Username).
		SetPassword(a.Config.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second)
	a.Client = mqtt.NewClient(options)

	if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("connect %s: %w", a.Config.Mqtt.URL, token.Error())
	}
	log.Println("Connected")
	defer a.Client.Disconnect(250)

	return stream.NewPublisher(a.Client, a.Config.Mqtt.Topics.Artifact).Publish(a.Config.Output.Path)
}

func main() {
	mqtt.ERROR = log.New(os.Stdout, "", 0)

	// Parse command line parameters
	configPath := flag.String("config", "", "Optional YAML config file.")
	outPath := flag.String("out", "", "Output GIF path, overrides output.path.")
	serveAddr := flag.String("serve", "", "Serve the output directory on this address after rendering.")
	flag.Parse()

	a := newApp()
	if err := a.readConfig(*configPath); err != nil {
		log.Fatalf("Config: %v", err)
	}
	if *outPath != "" {
		a.Config.Output.Path = *outPath
	}
	if err := a.Config.Validate(); err != nil {
		log.Fatalf("Config: %v", err)
	}

	if err := a.render(); err != nil {
		log.Fatal(err)
	}

	if a.Config.Mqtt.URL != "" {
		if err := a.publish(); err != nil {
			log.Fatal(err)
		}
	} else {
		log.Printf("You can now upload %s to the public/ folder and update the Mission component to use it.", a.Config.Output.Path)
	}

	if *serveAddr != "" {
		dir := filepath.Dir(a.Config.Output.Path)
		log.Fatal(api.NewApi(dir, *serveAddr).Serve())
	}
}
