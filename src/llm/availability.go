package llm

import "fmt"

// UnavailableReason says why the local model cannot be used.
type UnavailableReason string

const (
	ReasonNone              UnavailableReason = ""
	ReasonDeviceNotEligible UnavailableReason = "device_not_eligible"
	ReasonRuntimeNotEnabled UnavailableReason = "runtime_not_enabled"
	ReasonModelNotReady     UnavailableReason = "model_not_ready"
	ReasonOther             UnavailableReason = "other"
)

// Availability is the result of probing the model runtime.
type Availability struct {
	Available bool
	Reason    UnavailableReason
	// Detail describes ReasonOther.
	Detail string
}

func Available() Availability {
	return Availability{Available: true}
}

func Unavailable(reason UnavailableReason, detail string) Availability {
	return Availability{Reason: reason, Detail: detail}
}

// Explain returns the message shown to the user, one distinct text per case.
func (a Availability) Explain() string {
	if a.Available {
		return "On-device model is available."
	}
	const prefix = "On-device model is not available: "
	switch a.Reason {
	case ReasonDeviceNotEligible:
		return prefix + "Device not eligible."
	case ReasonRuntimeNotEnabled:
		return prefix + "Local model runtime not enabled."
	case ReasonModelNotReady:
		return prefix + "Model not ready."
	default:
		detail := a.Detail
		if detail == "" {
			detail = "unknown reason"
		}
		return prefix + detail
	}
}

func (a Availability) String() string {
	if a.Available {
		return "available"
	}
	if a.Reason == ReasonOther && a.Detail != "" {
		return fmt.Sprintf("unavailable(%s: %s)", a.Reason, a.Detail)
	}
	return fmt.Sprintf("unavailable(%s)", a.Reason)
}
