// Package a2dp implements the A2DP codec power-test receiver.
//
// A test run is started from intent-style extras (see ParseParams). The
// receiver checks that a bonded device is connected, asks the A2DP profile
// for the requested codec configuration and polls until the device reports
// it, then creates a media player and schedules the first alarm.
//
// The alarm chain alternates START and PAUSE. START plays (looping) and
// schedules the next alarm after PlayTime; PAUSE pauses and schedules the
// next alarm after IdleTime. Alarm number 2*Repetitions is STOP, which stops
// and releases the player.
//
// Two baseline modes exist. NotPlay runs the same alarm chain without
// touching the player except for the final release. Mute skips the device and
// codec checks (Bluetooth is expected to be off) and plays at zero volume.
//
// Every transition is written to the status log.
package a2dp
