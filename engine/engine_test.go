package engine

import "testing"

func TestResponseOK(t *testing.T) {
	tests := []struct {
		name string
		resp *Response
		want bool
	}{
		{"nil", nil, false},
		{"200", &Response{Body: "<html></html>", StatusCode: 200}, true},
		{"201 is a failure", &Response{Body: "<html></html>", StatusCode: 201}, false},
		{"204 is a failure", &Response{Body: "<html></html>", StatusCode: 204}, false},
		{"404", &Response{Body: "<html></html>", StatusCode: 404}, false},
		{"empty body", &Response{StatusCode: 200}, false},
		{"rendered without status", &Response{Body: "<html></html>", Rendered: true}, true},
		{"plain without status", &Response{Body: "<html></html>"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.resp.OK(); got != tt.want {
				t.Errorf("OK() = %v, want %v", got, tt.want)
			}
		})
	}
}
