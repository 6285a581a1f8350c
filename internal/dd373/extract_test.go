package dd373

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fragment parses one listing fragment for extraction tests.
func fragment(t *testing.T, markup string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	sel := doc.Find("div.goods-list-item").First()
	require.Equal(t, 1, sel.Length(), "fixture must contain a listing container")
	return sel
}

const currentMarkup = `
<div class="goods-list-item">
  <a class="goods-list-title" href="/goods/detail-3052177.html">1000个神圣石=100元 在线秒发</a>
  <div class="game-qufu-attr"><a>梦幻西游</a><a>电信一区</a><a>紫禁城</a></div>
  <div class="goods-price">￥103.10</div>
  <div class="game-reputation">
    卖家信誉<i class="icon-heart"></i><i class="icon-heart"></i><i class="icon-heart"></i>
    库存： 2
  </div>
  <div class="kucun"><p>1元=17.5439钻</p><p>1钻=0.0570元</p></div>
  <div class="shop-btn-group"><a class="im-buy-btn" href="//im.dd373.com/chat?seller=1">立即购买</a></div>
</div>`

func TestExtractProductCurrentMarkup(t *testing.T) {
	p := ExtractProduct(fragment(t, currentMarkup), "https://www.dd373.com")

	assert.Equal(t, "1000个神圣石=100元 在线秒发", p.Title)
	assert.Equal(t, "https://www.dd373.com/goods/detail-3052177.html", p.URL)
	assert.Equal(t, "3052177", p.ProductID)
	assert.Equal(t, "梦幻西游/电信一区/紫禁城", p.ServerInfo)
	assert.Equal(t, "1元=17.5439钻", p.ExchangeRateBuy)
	assert.Equal(t, "1钻=0.0570元", p.ExchangeRateSell)
	assert.Equal(t, 3, p.CreditRating)
	assert.Equal(t, "https://im.dd373.com/chat?seller=1", p.PurchaseURL)

	// Bundle title: 1000 units per lot, displayed stock 2, lot price 103.10.
	assert.Equal(t, 2000, p.Stock)
	assert.InDelta(t, 103.10/1000, p.Price, 1e-9)
}

func TestExtractProductLegacyMarkup(t *testing.T) {
	legacy := `
<div class="goods-list-item">
  <a class="goods-list-title" href="https://www.dd373.com/goods/detail-99.html">金币现货</a>
  <div class="goods-price">￥50</div>
  <div class="kucun"><span>12</span></div>
  <div class="width233"><p>1元=20钻</p><p>1钻=0.05元</p></div>
  <div class="game-reputation"><i class="icon-bluediamond"></i><i class="icon-bluediamond"></i></div>
</div>`
	p := ExtractProduct(fragment(t, legacy), "https://www.dd373.com")

	assert.Equal(t, "金币现货", p.Title)
	assert.Equal(t, "https://www.dd373.com/goods/detail-99.html", p.URL)
	assert.Equal(t, "99", p.ProductID)

	// No labeled stock, no bold span: the legacy .kucun span wins.
	assert.Equal(t, 12, p.Stock)
	// .kucun has no <p>, so rates come from the legacy .width233 container.
	assert.Equal(t, "1元=20钻", p.ExchangeRateBuy)
	assert.Equal(t, "1钻=0.05元", p.ExchangeRateSell)
	// Two diamonds, no hearts: tier 2 encodes as 5+count.
	assert.Equal(t, 7, p.CreditRating)

	// No bundle marker: price and stock pass through.
	assert.Equal(t, 50.0, p.Price)
}

func TestExtractProductMissingTitle(t *testing.T) {
	noTitle := `
<div class="goods-list-item">
  <div class="goods-price">￥9.99</div>
  <div class="game-reputation">库存： 4<i class="icon-heart"></i></div>
</div>`
	p := ExtractProduct(fragment(t, noTitle), "https://www.dd373.com")

	assert.Empty(t, p.Title)
	assert.Empty(t, p.URL)
	assert.Empty(t, p.ProductID)
	// The rest of the record still resolves.
	assert.Equal(t, 9.99, p.Price)
	assert.Equal(t, 4, p.Stock)
	assert.Equal(t, 1, p.CreditRating)
}

func TestExtractProductEmptyFragment(t *testing.T) {
	p := ExtractProduct(fragment(t, `<div class="goods-list-item"></div>`), "https://www.dd373.com")

	assert.Empty(t, p.Title)
	assert.Zero(t, p.Price)
	assert.Zero(t, p.Stock)
	assert.Zero(t, p.CreditRating)
	assert.Empty(t, p.ExchangeRateSell)
	assert.Empty(t, p.PurchaseURL)
}

func TestExtractProductRatingTierPriority(t *testing.T) {
	mixed := `
<div class="goods-list-item">
  <div class="game-reputation">
    <i class="icon-heart"></i><i class="icon-heart"></i>
    <i class="icon-bluediamond"></i><i class="icon-bluediamond"></i><i class="icon-bluediamond"></i>
    <i class="icon-crown"></i>
  </div>
</div>`
	p := ExtractProduct(fragment(t, mixed), "https://www.dd373.com")

	// Hearts win over diamonds and crowns: the rating stays in the 1-5 range.
	assert.Equal(t, 2, p.CreditRating)
}

func TestExtractProductCrownTier(t *testing.T) {
	crowns := `
<div class="goods-list-item">
  <div class="game-reputation"><i class="icon-crown"></i><i class="icon-crown"></i></div>
</div>`
	p := ExtractProduct(fragment(t, crowns), "https://www.dd373.com")
	assert.Equal(t, 12, p.CreditRating)
}

func TestExtractProductStockBoldFallback(t *testing.T) {
	bold := `
<div class="goods-list-item">
  <div class="game-reputation">现货 <span class="bold">31</span></div>
</div>`
	p := ExtractProduct(fragment(t, bold), "https://www.dd373.com")
	assert.Equal(t, 31, p.Stock)
}

func TestExtractProductAbsolutePurchaseURLKept(t *testing.T) {
	markup := `
<div class="goods-list-item">
  <div class="shop-btn-group"><a class="im-buy-btn" href="https://im.dd373.com/buy">买</a></div>
</div>`
	p := ExtractProduct(fragment(t, markup), "https://www.dd373.com")
	assert.Equal(t, "https://im.dd373.com/buy", p.PurchaseURL)
}

func TestExtractProductTitleWithoutBundleMarker(t *testing.T) {
	markup := `
<div class="goods-list-item">
  <a class="goods-list-title" href="/goods/detail-7.html">800万金币现货秒发</a>
  <div class="goods-price">￥64</div>
  <div class="game-reputation">库存： 5</div>
</div>`
	p := ExtractProduct(fragment(t, markup), "https://www.dd373.com")

	// Digits in the title don't matter without the "=" marker.
	assert.Equal(t, 64.0, p.Price)
	assert.Equal(t, 5, p.Stock)
}
