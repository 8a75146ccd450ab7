package mqttfactory

import mqtt "github.com/eclipse/paho.mqtt.golang"

func SetClientConstructor(f *Factory, newClient func(opts *mqtt.ClientOptions) mqtt.Client) {
	f.newClient = newClient
}
