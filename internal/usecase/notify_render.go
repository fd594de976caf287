package usecase

import (
	"bytes"
	"fmt"
	"html/template"

	domain "github.com/quocluongg/telectric-web-sub001/internal/entity"
)

// One render function per message kind: both share the line-item table, the
// copy around it differs.

const itemTableTmpl = `
<table border="1" cellpadding="6" cellspacing="0" style="border-collapse:collapse">
  <tr><th>Sản phẩm</th><th>Số lượng</th><th>Đơn giá</th><th>Thành tiền</th></tr>
  {{range .Rows}}<tr><td>{{.Name}}</td><td align="center">{{.Quantity}}</td><td align="right">{{.UnitPrice}}</td><td align="right">{{.LineTotal}}</td></tr>
  {{end}}<tr><td colspan="3" align="right"><b>Tổng cộng</b></td><td align="right"><b>{{.Total}}</b></td></tr>
</table>`

const operatorTmpl = `<h2>Đơn hàng mới #{{.Order.ID}}</h2>
<p><b>Khách hàng:</b> {{.Order.CustomerName}}<br>
<b>Điện thoại:</b> {{.Order.CustomerPhone}}<br>
<b>Địa chỉ giao hàng:</b> {{.Order.ShippingAddress}}<br>
<b>Thanh toán:</b> {{.PaymentLabel}}</p>
{{if .Order.Notes}}<p><b>Ghi chú:</b> {{.Order.Notes}}</p>{{end}}
{{template "items" .}}`

const customerTmpl = `<h2>Cảm ơn bạn đã đặt hàng!</h2>
<p>Xin chào {{.Order.CustomerName}},</p>
<p>Chúng tôi đã nhận được đơn hàng <b>#{{.Order.ID}}</b> của bạn và sẽ liên hệ
qua số {{.Order.CustomerPhone}} để xác nhận trước khi giao.</p>
<p><b>Hình thức thanh toán:</b> {{.PaymentLabel}}</p>
{{template "items" .}}
<p>Đơn hàng sẽ được giao tới: {{.Order.ShippingAddress}}</p>`

var (
	operatorBody = template.Must(template.Must(
		template.New("items").Parse(itemTableTmpl)).New("operator").Parse(operatorTmpl))
	customerBody = template.Must(template.Must(
		template.New("items").Parse(itemTableTmpl)).New("customer").Parse(customerTmpl))
)

type renderRow struct {
	Name      string
	Quantity  int
	UnitPrice string
	LineTotal string
}

type renderData struct {
	Order        *domain.Order
	PaymentLabel string
	Rows         []renderRow
	Total        string
}

func newRenderData(o *domain.Order) renderData {
	rows := make([]renderRow, 0, len(o.Items))
	for _, it := range o.Items {
		name := it.ProductName
		if it.VariantName != "" {
			name += " (" + it.VariantName + ")"
		}
		rows = append(rows, renderRow{
			Name:      name,
			Quantity:  it.Quantity,
			UnitPrice: domain.FormatVND(it.Price),
			LineTotal: domain.FormatVND(it.Price * int64(it.Quantity)),
		})
	}
	return renderData{
		Order:        o,
		PaymentLabel: o.PaymentMethod.Label(),
		Rows:         rows,
		Total:        domain.FormatVND(o.TotalAmount),
	}
}

func renderOperatorMessage(o *domain.Order) (subject, body string, err error) {
	var buf bytes.Buffer
	if err := operatorBody.ExecuteTemplate(&buf, "operator", newRenderData(o)); err != nil {
		return "", "", fmt.Errorf("render operator message: %w", err)
	}
	return "Đơn hàng mới #" + o.ID + " - " + o.CustomerName, buf.String(), nil
}

func renderCustomerMessage(o *domain.Order) (subject, body string, err error) {
	var buf bytes.Buffer
	if err := customerBody.ExecuteTemplate(&buf, "customer", newRenderData(o)); err != nil {
		return "", "", fmt.Errorf("render customer message: %w", err)
	}
	return "Xác nhận đơn hàng #" + o.ID, buf.String(), nil
}
