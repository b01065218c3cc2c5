// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain ascii", "Tea Glass", "tea-glass"},
		{"turkish letters", "El Yapımı Çay Bardağı", "el-yapimi-cay-bardagi"},
		{"dotted capital I", "İstanbul Kilimi", "istanbul-kilimi"},
		{"s cedilla", "Şeker Kasesi", "seker-kasesi"},
		{"umlauts and accents", "Café Öğütücü", "cafe-ogutucu"},
		{"punctuation collapses", "50% İndirim!! (Sadece Bugün)", "50-indirim-sadece-bugun"},
		{"leading and trailing noise", "  --Hereke Halısı--  ", "hereke-halisi"},
		{"digits survive", "Fincan Seti 6x90ml", "fincan-seti-6x90ml"},
		{"empty input", "", ""},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, From(testCase.input))
		})
	}
}
