// Package mqtt provides MQTT client connectivity for the Gatelogic entry
// service.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Topic subscriptions with ordered handler delivery
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// # Architecture
//
// MQTT is the message bus connecting keypad devices at the door to the
// verification service:
//
//	Keypad device ↔ MQTT Broker ↔ Gatelogic Core
//
// The topic strings in topics.go are a wire contract with the devices;
// see the builders there for payload formats.
//
// # Ordering
//
// The client is configured with ordered handler delivery (SetOrderMatters).
// The two-phase identity→verify protocol depends on it: the identity
// declaration must be fully applied before the verify request behind it
// is processed.
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	topics := mqtt.Topics{}
//	err = client.Subscribe(topics.VerifyRequest(), 1,
//	    func(topic string, payload []byte) error {
//	        // ...
//	        return nil
//	    })
package mqtt
