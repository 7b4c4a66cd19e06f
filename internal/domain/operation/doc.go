// Package operation holds the data-driven description of every PKCS#11 operation mirrored
// by the spy: names, function-list order and the direction and kind of each parameter.
// The table drives both call dispatch into the loaded module and trace rendering.
package operation
