// Package main provides a command-line client for the fraud detection service.
// It performs a unary assessment, follows the staged risk update stream, or
// writes a development TLS bundle for fraudd.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/salim-lakhal/CSC-8603-project/internal/domain/valueobject"
	grpcpresentation "github.com/salim-lakhal/CSC-8603-project/internal/presentation/grpc"
	"github.com/salim-lakhal/CSC-8603-project/pkg/tlsutil"
)

type options struct {
	addr           string
	mode           string
	timeout        time.Duration
	caFile         string
	serverName     string
	useTLS         bool
	certDir        string
	certHosts      string
	request        grpcpresentation.FraudAssessmentRequest
	previousClaims int64
}

func main() {
	var opts options
	flag.StringVar(&opts.addr, "addr", "localhost:9090", "gRPC server address")
	flag.StringVar(&opts.mode, "mode", "assess", "action to perform (assess, stream, certs)")
	flag.DurationVar(&opts.timeout, "timeout", 0, "call deadline (0 = none)")
	flag.BoolVar(&opts.useTLS, "tls", false, "connect with TLS")
	flag.StringVar(&opts.caFile, "ca", "", "CA certificate for TLS (default: system pool)")
	flag.StringVar(&opts.serverName, "server-name", "", "override the TLS server name")
	flag.StringVar(&opts.certDir, "out", "certs", "output directory for -mode certs")
	flag.StringVar(&opts.certHosts, "hosts", "localhost,127.0.0.1", "comma-separated hosts for -mode certs")
	flag.StringVar(&opts.request.ClaimID, "claim-id", uuid.NewString(), "claim identifier")
	flag.StringVar(&opts.request.PolicyNumber, "policy", "POL-0001", "policy number")
	flag.StringVar(&opts.request.ClaimType, "claim-type", "AUTO", "claim type")
	flag.StringVar(&opts.request.IncidentDate, "incident-date", time.Now().Format("2006-01-02"), "incident date")
	flag.Float64Var(&opts.request.EstimatedAmount, "amount", 1000, "estimated claim amount")
	flag.Int64Var(&opts.previousClaims, "previous-claims", 0, "number of previous claims")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, out io.Writer) error {
	if opts.mode == "certs" {
		return writeCerts(opts, out)
	}

	count, err := claimCount(opts.previousClaims)
	if err != nil {
		return err
	}
	opts.request.PreviousClaimsCount = count

	var creds credentials.TransportCredentials = insecure.NewCredentials()
	if opts.useTLS {
		tlsCreds, err := tlsutil.ClientCredentials(opts.caFile, opts.serverName)
		if err != nil {
			return err
		}
		creds = tlsCreds
	}

	conn, err := grpc.NewClient(opts.addr, grpc.WithTransportCredentials(creds))
	if err != nil {
		return fmt.Errorf("connect to %s: %w", opts.addr, err)
	}
	defer conn.Close()

	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}
	ctx = metadata.AppendToOutgoingContext(ctx, grpcpresentation.RequestIDHeader, uuid.NewString())

	client := grpcpresentation.NewFraudDetectionClient(conn)
	switch opts.mode {
	case "assess":
		return assess(ctx, client, &opts.request, out)
	case "stream":
		return follow(ctx, client, &opts.request, out)
	default:
		return fmt.Errorf("unknown mode %q (want assess, stream or certs)", opts.mode)
	}
}

func assess(ctx context.Context, client *grpcpresentation.FraudDetectionClient, req *grpcpresentation.FraudAssessmentRequest, out io.Writer) error {
	resp, err := client.AssessFraudRisk(ctx, req)
	if err != nil {
		return describe(err)
	}

	level := "UNKNOWN"
	if l, err := valueobject.RiskLevelFromNumber(resp.RiskLevel); err == nil {
		level = l.String()
	}

	fmt.Fprintf(out, "Claim:                  %s\n", resp.ClaimID)
	fmt.Fprintf(out, "Risk level:             %s\n", level)
	fmt.Fprintf(out, "Risk score:             %.2f\n", resp.RiskScore)
	fmt.Fprintf(out, "Reason:                 %s\n", resp.AssessmentReason)
	fmt.Fprintf(out, "Requires investigation: %t\n", resp.RequiresInvestigation)
	return nil
}

func follow(ctx context.Context, client *grpcpresentation.FraudDetectionClient, req *grpcpresentation.FraudAssessmentRequest, out io.Writer) error {
	stream, err := client.StreamRiskUpdates(ctx, req)
	if err != nil {
		return describe(err)
	}

	for {
		update, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return describe(err)
		}
		fmt.Fprintf(out, "%.2f  %s\n", update.CurrentScore, update.Message)
	}
}

// claimCount narrows the flag value to the int32 wire field.
func claimCount(n int64) (int32, error) {
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, fmt.Errorf("-previous-claims %d is out of range [%d, %d]", n, math.MinInt32, math.MaxInt32)
	}
	return int32(n), nil
}

func writeCerts(opts options, out io.Writer) error {
	bundle, err := tlsutil.GenerateDevBundle(opts.certDir, strings.Split(opts.certHosts, ",")...)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "GRPC_TLS_CERT_FILE=%s\n", bundle.ServerCertFile())
	fmt.Fprintf(out, "GRPC_TLS_KEY_FILE=%s\n", bundle.ServerKeyFile())
	fmt.Fprintf(out, "# clients: fraudctl -tls -ca %s\n", bundle.CAFile())
	return nil
}

func describe(err error) error {
	st := status.Convert(err)
	return fmt.Errorf("%s: %s", st.Code(), st.Message())
}
