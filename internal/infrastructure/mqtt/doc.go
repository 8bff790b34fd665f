// Package mqtt provides MQTT client connectivity for evobridge.
//
// This package manages:
//   - Connection to the platform's broker with auto-reconnect
//   - Retained entity state publishing
//   - Command topic subscriptions with wildcard support
//   - Last Will and Testament (LWT) for offline detection
//
// # Architecture
//
// MQTT is the bridge's surface towards the smart-home platform. Each
// heating device is exposed as an entity with a retained state topic and
// a command topic:
//
//	vendor cloud API → evobridge → MQTT broker → smart-home platform
//
// # Security Considerations
//
//   - TLS is required for production deployments (cfg.Broker.TLS=true)
//   - Credentials are validated against broker ACL
//   - Anonymous access is only for local development
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Publish entity state
//	topic := mqtt.Topics{}.ClimateState("3432522")
//	client.PublishRetained(topic, stateJSON)
//
//	// Receive entity commands
//	err = client.Subscribe(mqtt.Topics{}.AllCommands(), 1,
//	    func(topic string, payload []byte) error {
//	        return dispatchCommand(topic, payload)
//	    })
package mqtt
