// Package tlsutil loads TLS credentials for the fraud detection gRPC listener
// and its clients, and issues a throwaway CA plus server certificate for local use.
package tlsutil

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"time"

	"google.golang.org/grpc/credentials"
)

// ServerCredentials loads gRPC server credentials from a PEM key pair.
func ServerCredentials(certFile, keyFile string) (credentials.TransportCredentials, error) {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("tlsutil: load server key pair: %w", err)
	}

	return credentials.NewTLS(&tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}), nil
}

// ClientCredentials builds gRPC client credentials. An empty caFile trusts the
// system pool; a non-empty serverName overrides the name checked against the
// server certificate.
func ClientCredentials(caFile, serverName string) (credentials.TransportCredentials, error) {
	cfg := &tls.Config{
		MinVersion: tls.VersionTLS12,
		ServerName: serverName,
	}

	if caFile != "" {
		caPEM, err := os.ReadFile(caFile)
		if err != nil {
			return nil, fmt.Errorf("tlsutil: read CA file: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caPEM) {
			return nil, fmt.Errorf("tlsutil: no CA certificate found in %s", caFile)
		}
		cfg.RootCAs = pool
	}

	return credentials.NewTLS(cfg), nil
}

// DevBundle locates the files written by GenerateDevBundle.
type DevBundle struct {
	Dir string
}

func (b DevBundle) CAFile() string         { return filepath.Join(b.Dir, "ca.pem") }
func (b DevBundle) CAKeyFile() string      { return filepath.Join(b.Dir, "ca-key.pem") }
func (b DevBundle) ServerCertFile() string { return filepath.Join(b.Dir, "server.pem") }
func (b DevBundle) ServerKeyFile() string  { return filepath.Join(b.Dir, "server-key.pem") }

// GenerateDevBundle writes a self-signed CA and a server certificate valid for
// hosts (DNS names or IP literals) into dir. Not for production use.
func GenerateDevBundle(dir string, hosts ...string) (DevBundle, error) {
	bundle := DevBundle{Dir: dir}
	if len(hosts) == 0 {
		return bundle, fmt.Errorf("tlsutil: at least one host is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return bundle, fmt.Errorf("tlsutil: mkdir %s: %w", dir, err)
	}

	now := time.Now()
	ca := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{Organization: []string{"Fraud Detection Dev CA"}},
		NotBefore:             now,
		NotAfter:              now.AddDate(5, 0, 0),
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageCRLSign,
		BasicConstraintsValid: true,
		IsCA:                  true,
	}
	caCert, caKey, err := issue(ca, nil, nil, bundle.CAFile(), bundle.CAKeyFile())
	if err != nil {
		return bundle, err
	}

	leaf := &x509.Certificate{
		SerialNumber: big.NewInt(2),
		Subject:      pkix.Name{Organization: []string{"Fraud Detection Dev"}, CommonName: hosts[0]},
		NotBefore:    now,
		NotAfter:     now.AddDate(1, 0, 0),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	}
	for _, h := range hosts {
		if ip := net.ParseIP(h); ip != nil {
			leaf.IPAddresses = append(leaf.IPAddresses, ip)
		} else {
			leaf.DNSNames = append(leaf.DNSNames, h)
		}
	}
	if _, _, err := issue(leaf, caCert, caKey, bundle.ServerCertFile(), bundle.ServerKeyFile()); err != nil {
		return bundle, err
	}

	return bundle, nil
}

// issue creates a key for template, signs it with parent (self-signed when
// parent is nil) and writes both as PEM.
func issue(template, parent *x509.Certificate, parentKey *ecdsa.PrivateKey, certFile, keyFile string) (*x509.Certificate, *ecdsa.PrivateKey, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("tlsutil: generate key for %s: %w", certFile, err)
	}
	if parent == nil {
		parent, parentKey = template, key
	}

	der, err := x509.CreateCertificate(rand.Reader, template, parent, &key.PublicKey, parentKey)
	if err != nil {
		return nil, nil, fmt.Errorf("tlsutil: sign %s: %w", certFile, err)
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, nil, fmt.Errorf("tlsutil: parse %s: %w", certFile, err)
	}
	keyDER, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		return nil, nil, fmt.Errorf("tlsutil: marshal key for %s: %w", certFile, err)
	}

	if err := writePEM(certFile, "CERTIFICATE", der); err != nil {
		return nil, nil, err
	}
	if err := writePEM(keyFile, "EC PRIVATE KEY", keyDER); err != nil {
		return nil, nil, err
	}
	return cert, key, nil
}

func writePEM(path, blockType string, data []byte) error {
	buf := pem.EncodeToMemory(&pem.Block{Type: blockType, Bytes: data})
	if err := os.WriteFile(path, buf, 0o600); err != nil {
		return fmt.Errorf("tlsutil: write %s: %w", path, err)
	}
	return nil
}
