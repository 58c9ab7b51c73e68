package platform

import (
	"fmt"

	"golang.org/x/mod/semver"

	"github.com/go-drift/fieldbind/pkg/errors"
)

// Bridge protocol versions. The native embedder reports its protocol
// version during the handshake; Go refuses to talk to embedders older than
// the minimum or from a different major line.
const (
	// BridgeProtocolVersion is the protocol version this library implements.
	BridgeProtocolVersion = "v1.1.0"

	// MinBridgeProtocolVersion is the oldest embedder protocol still accepted.
	MinBridgeProtocolVersion = "v1.0.0"
)

// ErrIncompatibleBridge indicates the native embedder speaks an unsupported
// protocol version.
var ErrIncompatibleBridge = fmt.Errorf("incompatible native bridge protocol")

var bridgeChannel = NewMethodChannel("fieldbind/bridge")

// VerifyBridge performs the protocol handshake with the native embedder.
// It should be called once after SetNativeBridge. Failures are reported via
// errors.Report and returned.
func VerifyBridge() error {
	result, err := bridgeChannel.Invoke("protocolVersion", nil)
	if err != nil {
		reportHandshake(err)
		return err
	}

	version, ok := result.(string)
	if !ok {
		err := &errors.ParseError{
			Channel:  bridgeChannel.Name(),
			DataType: "protocol version",
			Got:      result,
		}
		reportHandshake(err)
		return err
	}

	if !semver.IsValid(version) {
		err := fmt.Errorf("%w: malformed version %q", ErrIncompatibleBridge, version)
		reportHandshake(err)
		return err
	}
	if semver.Compare(version, MinBridgeProtocolVersion) < 0 {
		err := fmt.Errorf("%w: embedder %s is older than minimum %s",
			ErrIncompatibleBridge, version, MinBridgeProtocolVersion)
		reportHandshake(err)
		return err
	}
	if semver.Major(version) != semver.Major(BridgeProtocolVersion) {
		err := fmt.Errorf("%w: embedder %s, library %s",
			ErrIncompatibleBridge, version, BridgeProtocolVersion)
		reportHandshake(err)
		return err
	}

	return nil
}

func reportHandshake(err error) {
	errors.Report(&errors.Error{
		Op:      "platform.VerifyBridge",
		Kind:    errors.KindInit,
		Channel: bridgeChannel.Name(),
		Err:     err,
	})
}
