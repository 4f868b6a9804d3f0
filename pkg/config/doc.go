// Package config loads the bridge server configuration.
//
// Configuration is a YAML file layered over Default(). Durations use Go
// syntax ("500ms", "2m"). Command-line flags are applied by the binary after
// Load and before Validate.
//
// Example:
//
//	listen: ":9999"
//	secret: "s3cret"
//	log:
//	  level: debug
//	  format: json
//	  protocol_log: /var/log/rcbridge/capture.cbor
//	journal:
//	  path: /var/lib/rcbridge/journal.db
//	mdns:
//	  enabled: true
//	  instance: bench-1
//	scanner:
//	  simulated: true
//	  interval: 2s
//	  access_points:
//	    - ssid: lab
//	      bssid: "aa:bb:cc:dd:ee:01"
//	      level: -45
//	      frequency: 2412
//	a2dp:
//	  enabled: true
//	  status_log: /tmp/a2dp_power_test.txt
package config
