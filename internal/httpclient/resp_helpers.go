package httpclient

import (
	"net/http"
	"time"
)

func effURL(req *http.Request, resp *http.Response) string {
	if resp != nil && resp.Request != nil && resp.Request.URL != nil {
		return resp.Request.URL.String()
	}
	if req != nil && req.URL != nil {
		return req.URL.String()
	}
	return ""
}

func cloneHdr(h http.Header) http.Header {
	if h == nil {
		return nil
	}
	return h.Clone()
}

func respFromHTTP(sent *http.Request, resp *http.Response, body []byte, dur time.Duration) *Response {
	if resp == nil {
		return &Response{
			Body:         body,
			Duration:     dur,
			EffectiveURL: effURL(sent, nil),
		}
	}

	method := ""
	if sent != nil {
		method = sent.Method
	}
	return &Response{
		Status:       resp.Status,
		StatusCode:   resp.StatusCode,
		Proto:        resp.Proto,
		Headers:      cloneHdr(resp.Header),
		ReqMethod:    method,
		Body:         body,
		Duration:     dur,
		EffectiveURL: effURL(sent, resp),
	}
}
