package dd373

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListingsDocumentOrder(t *testing.T) {
	page := `<html><body>
<div class="other"></div>
<div class="goods-list-item">
  <a class="goods-list-title" href="/goods/detail-1.html">第一个</a>
  <div class="goods-price">￥10</div>
</div>
<div class="goods-list-item">
  <a class="goods-list-title" href="/goods/detail-2.html">第二个</a>
  <div class="goods-price">￥20</div>
</div>
<div class="goods-list-item">
  <a class="goods-list-title" href="/goods/detail-3.html">第三个</a>
  <div class="goods-price">￥30</div>
</div>
</body></html>`

	products, err := ParseListings(page, "https://www.dd373.com")
	require.NoError(t, err)
	require.Len(t, products, 3)

	assert.Equal(t, "第一个", products[0].Title)
	assert.Equal(t, "第二个", products[1].Title)
	assert.Equal(t, "第三个", products[2].Title)
	assert.Equal(t, "1", products[0].ProductID)
	assert.Equal(t, 30.0, products[2].Price)
}

func TestParseListingsEmptyPage(t *testing.T) {
	products, err := ParseListings(`<html><body><p>暂无商品</p></body></html>`, "")
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestBaseFromListingURL(t *testing.T) {
	testCases := []struct {
		name string
		url  string
		want string
	}{
		{"search url", "https://www.dd373.com/s-9fv09v-5tgdjq.html", "https://www.dd373.com"},
		{"mirror host", "https://m.dd373.com/s-abc.html", "https://m.dd373.com"},
		{"no search segment", "https://www.dd373.com/goods/detail-1.html", DefaultBaseURL},
		{"empty", "", DefaultBaseURL},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, BaseFromListingURL(tc.url))
		})
	}
}
