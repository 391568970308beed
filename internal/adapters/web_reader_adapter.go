package adapters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ErrFetchFailed は URL 本文の取得に失敗したことを表します。
var ErrFetchFailed = errors.New("failed to fetch url content")

// ErrForbiddenAddress は内部向けアドレスへの接続を拒否したことを表します。
var ErrForbiddenAddress = errors.New("destination address is not allowed")

// WebReaderAdapter は URL の HTML を取得し、マークアップを除いたプレーンテキストに変換します。
// 接続先はループバック・プライベート・リンクローカル以外に限定します。
type WebReaderAdapter struct {
	client    *http.Client
	userAgent string
	maxBytes  int64
}

// NewWebReaderAdapter はタイムアウト付きの HTTP クライアントで WebReaderAdapter を生成します。
func NewWebReaderAdapter(timeout time.Duration, userAgent string, maxBytes int64) *WebReaderAdapter {
	return newWebReaderAdapter(timeout, userAgent, maxBytes, isPublicIP)
}

func newWebReaderAdapter(timeout time.Duration, userAgent string, maxBytes int64, allowIP func(net.IP) bool) *WebReaderAdapter {
	dialer := &net.Dialer{
		Timeout: timeout,
		Control: guardDestination(allowIP),
	}
	transport := &http.Transport{
		// 環境変数のプロキシを経由すると接続先の検査が無効になるため使いません。
		Proxy:                 nil,
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   timeout,
		ResponseHeaderTimeout: timeout,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
	}

	return &WebReaderAdapter{
		client:    &http.Client{Timeout: timeout, Transport: transport},
		userAgent: userAgent,
		maxBytes:  maxBytes,
	}
}

// guardDestination は名前解決後のアドレスを検査する Dialer.Control を返します。
// リダイレクト先への接続にも適用されます。
func guardDestination(allowIP func(net.IP) bool) func(network, address string, _ syscall.RawConn) error {
	return func(network, address string, _ syscall.RawConn) error {
		host, _, err := net.SplitHostPort(address)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrForbiddenAddress, address)
		}
		ip := net.ParseIP(host)
		if ip == nil || !allowIP(ip) {
			return fmt.Errorf("%w: %s", ErrForbiddenAddress, address)
		}
		return nil
	}
}

func isPublicIP(ip net.IP) bool {
	return !(ip.IsLoopback() ||
		ip.IsPrivate() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsInterfaceLocalMulticast() ||
		ip.IsMulticast() ||
		ip.IsUnspecified())
}

// FetchText は 200 以外の応答や空の本文を ErrFetchFailed として返します。
func (a *WebReaderAdapter) FetchText(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: unsupported url %q", ErrFetchFailed, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", a.userAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode)
	}

	text, err := extractPlainText(io.LimitReader(resp.Body, a.maxBytes))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	if text == "" {
		return "", fmt.Errorf("%w: empty document", ErrFetchFailed)
	}
	return text, nil
}

// extractPlainText は script / style を除去し、テキストノードを空白 1 つで連結します。
func extractPlainText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse html: %w", err)
	}
	doc.Find("script, style, noscript, template").Remove()

	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}

	return strings.Join(strings.Fields(sb.String()), " "), nil
}
