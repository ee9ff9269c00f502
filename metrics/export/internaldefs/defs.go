package internaldefs

import (
	"strconv"
	"strings"

	"github.com/MrEthical07/goSecurity/metrics"
)

// CounterDef names one counter.
type CounterDef struct {
	ID   metrics.ID
	Name string
	Help string
}

// HistogramDef names one histogram.
type HistogramDef struct {
	ID   metrics.ID
	Name string
	Help string
}

// CounterDefs lists every exported counter.
var CounterDefs = []CounterDef{
	{ID: metrics.AESEncodeSuccess, Name: "gosecurity_aes_encode_success_total", Help: "Successful symmetric encode operations."},
	{ID: metrics.AESEncodeFailure, Name: "gosecurity_aes_encode_failure_total", Help: "Failed symmetric encode operations."},
	{ID: metrics.AESDecodeSuccess, Name: "gosecurity_aes_decode_success_total", Help: "Successful symmetric decode batches."},
	{ID: metrics.AESDecodeFailure, Name: "gosecurity_aes_decode_failure_total", Help: "Failed symmetric decode batches."},
	{ID: metrics.RSACreateSuccess, Name: "gosecurity_rsa_create_success_total", Help: "Generated key pairs."},
	{ID: metrics.RSACreateFailure, Name: "gosecurity_rsa_create_failure_total", Help: "Failed key pair generations."},
	{ID: metrics.RSAInitSuccess, Name: "gosecurity_rsa_init_success_total", Help: "Key handle loads from storage."},
	{ID: metrics.RSAInitFailure, Name: "gosecurity_rsa_init_failure_total", Help: "Failed key handle loads."},
	{ID: metrics.RSAEncodeSuccess, Name: "gosecurity_rsa_encode_success_total", Help: "Successful asymmetric encode operations."},
	{ID: metrics.RSAEncodeFailure, Name: "gosecurity_rsa_encode_failure_total", Help: "Failed asymmetric encode operations."},
	{ID: metrics.RSADecodeSuccess, Name: "gosecurity_rsa_decode_success_total", Help: "Successful asymmetric decode batches."},
	{ID: metrics.RSADecodeFailure, Name: "gosecurity_rsa_decode_failure_total", Help: "Failed asymmetric decode batches."},
	{ID: metrics.TokenIssueSuccess, Name: "gosecurity_token_issue_success_total", Help: "Issued tokens."},
	{ID: metrics.TokenIssueFailure, Name: "gosecurity_token_issue_failure_total", Help: "Token issue attempts that returned an error result."},
	{ID: metrics.TokenVerifySuccess, Name: "gosecurity_token_verify_success_total", Help: "Tokens that verified."},
	{ID: metrics.TokenVerifyFailure, Name: "gosecurity_token_verify_failure_total", Help: "Tokens rejected on decode."},
}

// HistogramDefs lists every exported histogram.
var HistogramDefs = []HistogramDef{
	{ID: metrics.TokenVerifyLatency, Name: "gosecurity_token_verify_latency_seconds", Help: "Token decode latency."},
}

// HistogramBoundSuffix renders each bucket bound as a metric-name-safe suffix,
// with "inf" for the final bucket.
var HistogramBoundSuffix = boundSuffixes()

func boundSuffixes() []string {
	out := make([]string, 0, metrics.BucketCount)
	for _, b := range metrics.Bounds {
		s := strconv.FormatFloat(b, 'f', -1, 64)
		out = append(out, strings.ReplaceAll(s, ".", "_"))
	}
	return append(out, "inf")
}

// NormalizeBuckets copies raw into a fixed-size array, zero-filling missing buckets.
func NormalizeBuckets(raw []uint64) [metrics.BucketCount]uint64 {
	var out [metrics.BucketCount]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts into running totals.
func CumulativeBuckets(raw [metrics.BucketCount]uint64) [metrics.BucketCount]uint64 {
	var out [metrics.BucketCount]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
