package templates

// Template IDs. These double as the email type tag recorded on sent messages.
const (
	TemplateInquiryAcknowledgment = "inquiry_acknowledgment"
	TemplateQuoteReady            = "quote_ready"
	TemplateFollowUp              = "follow_up"
	TemplateOrderConfirmation     = "order_confirmation"
	TemplateInspectionScheduled   = "inspection_scheduled"
)

// builtinTemplates returns the full template set. Every template carries all
// four bodies (html/text x en/vi) plus bilingual subject and display name.
func builtinTemplates() []*Template {
	return []*Template{
		inquiryAcknowledgment(),
		quoteReady(),
		followUp(),
		orderConfirmation(),
		inspectionScheduled(),
	}
}

func inquiryAcknowledgment() *Template {
	return &Template{
		ID: TemplateInquiryAcknowledgment,
		Name: Bilingual{
			EN: "Inquiry Acknowledgment",
			VI: "Xác nhận yêu cầu báo giá",
		},
		Subject: Bilingual{
			EN: "We received your inquiry #{{inquiryId}}",
			VI: "Chúng tôi đã nhận được yêu cầu #{{inquiryId}} của bạn",
		},
		HTML: Bilingual{
			EN: `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #8B4513;">Thank you for your inquiry</h2>
  <p>Dear {{customerName}},</p>
  <p>We have received your inquiry <strong>#{{inquiryId}}</strong> submitted on {{submittedDate}}.</p>
  {{#if companyName}}<p>Company: <strong>{{companyName}}</strong></p>{{/if}}
  {{#if itemCount}}<p>Your inquiry covers <strong>{{itemCount}}</strong> item(s).</p>{{/if}}
  <div style="background: #f9f5f0; padding: 16px; border-radius: 6px;">
    <p style="margin: 0; color: #555;">{{message}}</p>
  </div>
  <p>Our sales team will review your request and reply with a detailed quote within 1-2 business days.</p>
  <p>Best regards,<br>NKC Furniture Sales Team</p>
</div>`,
			VI: `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #8B4513;">Cảm ơn bạn đã gửi yêu cầu</h2>
  <p>Kính gửi {{customerName}},</p>
  <p>Chúng tôi đã nhận được yêu cầu báo giá <strong>#{{inquiryId}}</strong> gửi ngày {{submittedDate}}.</p>
  {{#if companyName}}<p>Công ty: <strong>{{companyName}}</strong></p>{{/if}}
  {{#if itemCount}}<p>Yêu cầu của bạn gồm <strong>{{itemCount}}</strong> sản phẩm.</p>{{/if}}
  <div style="background: #f9f5f0; padding: 16px; border-radius: 6px;">
    <p style="margin: 0; color: #555;">{{message}}</p>
  </div>
  <p>Đội ngũ kinh doanh của chúng tôi sẽ xem xét và gửi báo giá chi tiết trong vòng 1-2 ngày làm việc.</p>
  <p>Trân trọng,<br>Đội ngũ kinh doanh NKC Furniture</p>
</div>`,
		},
		Text: Bilingual{
			EN: `Dear {{customerName}},

We have received your inquiry #{{inquiryId}} submitted on {{submittedDate}}.
{{#if companyName}}Company: {{companyName}}
{{/if}}{{#if itemCount}}Your inquiry covers {{itemCount}} item(s).
{{/if}}
Your message:
{{message}}

Our sales team will review your request and reply with a detailed quote within 1-2 business days.

Best regards,
NKC Furniture Sales Team`,
			VI: `Kính gửi {{customerName}},

Chúng tôi đã nhận được yêu cầu báo giá #{{inquiryId}} gửi ngày {{submittedDate}}.
{{#if companyName}}Công ty: {{companyName}}
{{/if}}{{#if itemCount}}Yêu cầu của bạn gồm {{itemCount}} sản phẩm.
{{/if}}
Nội dung yêu cầu:
{{message}}

Đội ngũ kinh doanh của chúng tôi sẽ xem xét và gửi báo giá chi tiết trong vòng 1-2 ngày làm việc.

Trân trọng,
Đội ngũ kinh doanh NKC Furniture`,
		},
	}
}

func quoteReady() *Template {
	return &Template{
		ID: TemplateQuoteReady,
		Name: Bilingual{
			EN: "Quote Ready",
			VI: "Báo giá đã sẵn sàng",
		},
		Subject: Bilingual{
			EN: "Your quote for inquiry #{{inquiryId}} is ready",
			VI: "Báo giá cho yêu cầu #{{inquiryId}} của bạn đã sẵn sàng",
		},
		HTML: Bilingual{
			EN: `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #8B4513;">Your quote is ready</h2>
  <p>Dear {{customerName}},</p>
  <p>We have prepared a quote for your inquiry <strong>#{{inquiryId}}</strong>:</p>
  {{quoteItemsList}}
  <p style="font-size: 18px;">Total: <strong>{{totalPrice}}</strong></p>
  {{#if validUntil}}<p>This quote is valid until <strong>{{validUntil}}</strong>.</p>{{/if}}
  {{#if notes}}<div style="background: #f9f5f0; padding: 16px; border-radius: 6px;"><p style="margin: 0;">{{notes}}</p></div>{{/if}}
  <p>Reply to this email to accept the quote or discuss adjustments.</p>
  <p>Best regards,<br>NKC Furniture Sales Team</p>
</div>`,
			VI: `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #8B4513;">Báo giá của bạn đã sẵn sàng</h2>
  <p>Kính gửi {{customerName}},</p>
  <p>Chúng tôi đã chuẩn bị báo giá cho yêu cầu <strong>#{{inquiryId}}</strong>:</p>
  {{quoteItemsList}}
  <p style="font-size: 18px;">Tổng cộng: <strong>{{totalPrice}}</strong></p>
  {{#if validUntil}}<p>Báo giá có hiệu lực đến <strong>{{validUntil}}</strong>.</p>{{/if}}
  {{#if notes}}<div style="background: #f9f5f0; padding: 16px; border-radius: 6px;"><p style="margin: 0;">{{notes}}</p></div>{{/if}}
  <p>Vui lòng trả lời email này để chấp nhận báo giá hoặc trao đổi thêm.</p>
  <p>Trân trọng,<br>Đội ngũ kinh doanh NKC Furniture</p>
</div>`,
		},
		Text: Bilingual{
			EN: `Dear {{customerName}},

We have prepared a quote for your inquiry #{{inquiryId}}.

Total: {{totalPrice}}
{{#if validUntil}}This quote is valid until {{validUntil}}.
{{/if}}{{#if notes}}
Notes: {{notes}}
{{/if}}
Reply to this email to accept the quote or discuss adjustments.

Best regards,
NKC Furniture Sales Team`,
			VI: `Kính gửi {{customerName}},

Chúng tôi đã chuẩn bị báo giá cho yêu cầu #{{inquiryId}}.

Tổng cộng: {{totalPrice}}
{{#if validUntil}}Báo giá có hiệu lực đến {{validUntil}}.
{{/if}}{{#if notes}}
Ghi chú: {{notes}}
{{/if}}
Vui lòng trả lời email này để chấp nhận báo giá hoặc trao đổi thêm.

Trân trọng,
Đội ngũ kinh doanh NKC Furniture`,
		},
	}
}

func followUp() *Template {
	return &Template{
		ID: TemplateFollowUp,
		Name: Bilingual{
			EN: "Quote Follow-up",
			VI: "Nhắc lại báo giá",
		},
		Subject: Bilingual{
			EN: "Following up on your quote for inquiry #{{inquiryId}}",
			VI: "Nhắc lại báo giá cho yêu cầu #{{inquiryId}} của bạn",
		},
		HTML: Bilingual{
			EN: `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <p>Dear {{customerName}},</p>
  <p>We wanted to follow up on the quote we sent for your inquiry <strong>#{{inquiryId}}</strong>.</p>
  {{#if validUntil}}<p>A reminder that the quoted pricing is valid until <strong>{{validUntil}}</strong>.</p>{{/if}}
  <p>If you have any questions about materials, finishes, or shipping terms, just reply to this email.</p>
  <p>Best regards,<br>NKC Furniture Sales Team</p>
</div>`,
			VI: `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <p>Kính gửi {{customerName}},</p>
  <p>Chúng tôi muốn nhắc lại về báo giá đã gửi cho yêu cầu <strong>#{{inquiryId}}</strong> của bạn.</p>
  {{#if validUntil}}<p>Xin lưu ý giá báo có hiệu lực đến <strong>{{validUntil}}</strong>.</p>{{/if}}
  <p>Nếu bạn có câu hỏi về chất liệu, hoàn thiện hoặc điều kiện vận chuyển, vui lòng trả lời email này.</p>
  <p>Trân trọng,<br>Đội ngũ kinh doanh NKC Furniture</p>
</div>`,
		},
		Text: Bilingual{
			EN: `Dear {{customerName}},

We wanted to follow up on the quote we sent for your inquiry #{{inquiryId}}.
{{#if validUntil}}A reminder that the quoted pricing is valid until {{validUntil}}.
{{/if}}
If you have any questions about materials, finishes, or shipping terms, just reply to this email.

Best regards,
NKC Furniture Sales Team`,
			VI: `Kính gửi {{customerName}},

Chúng tôi muốn nhắc lại về báo giá đã gửi cho yêu cầu #{{inquiryId}} của bạn.
{{#if validUntil}}Xin lưu ý giá báo có hiệu lực đến {{validUntil}}.
{{/if}}
Nếu bạn có câu hỏi về chất liệu, hoàn thiện hoặc điều kiện vận chuyển, vui lòng trả lời email này.

Trân trọng,
Đội ngũ kinh doanh NKC Furniture`,
		},
	}
}

func orderConfirmation() *Template {
	return &Template{
		ID: TemplateOrderConfirmation,
		Name: Bilingual{
			EN: "Order Confirmation",
			VI: "Xác nhận đơn hàng",
		},
		Subject: Bilingual{
			EN: "Order {{orderNumber}} confirmed",
			VI: "Đơn hàng {{orderNumber}} đã được xác nhận",
		},
		HTML: Bilingual{
			EN: `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #8B4513;">Order confirmed</h2>
  <p>Dear {{customerName}},</p>
  <p>Your order <strong>{{orderNumber}}</strong> has been confirmed.</p>
  {{orderItemsList}}
  <p style="font-size: 18px;">Order total: <strong>{{totalPrice}}</strong></p>
  {{#if estimatedDelivery}}<p>Estimated delivery: <strong>{{estimatedDelivery}}</strong></p>{{/if}}
  <p>We will notify you when production begins and again when your order ships.</p>
  <p>Best regards,<br>NKC Furniture Sales Team</p>
</div>`,
			VI: `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #8B4513;">Đơn hàng đã được xác nhận</h2>
  <p>Kính gửi {{customerName}},</p>
  <p>Đơn hàng <strong>{{orderNumber}}</strong> của bạn đã được xác nhận.</p>
  {{orderItemsList}}
  <p style="font-size: 18px;">Tổng đơn hàng: <strong>{{totalPrice}}</strong></p>
  {{#if estimatedDelivery}}<p>Dự kiến giao hàng: <strong>{{estimatedDelivery}}</strong></p>{{/if}}
  <p>Chúng tôi sẽ thông báo khi bắt đầu sản xuất và khi đơn hàng được giao.</p>
  <p>Trân trọng,<br>Đội ngũ kinh doanh NKC Furniture</p>
</div>`,
		},
		Text: Bilingual{
			EN: `Dear {{customerName}},

Your order {{orderNumber}} has been confirmed.

Order total: {{totalPrice}}
{{#if estimatedDelivery}}Estimated delivery: {{estimatedDelivery}}
{{/if}}
We will notify you when production begins and again when your order ships.

Best regards,
NKC Furniture Sales Team`,
			VI: `Kính gửi {{customerName}},

Đơn hàng {{orderNumber}} của bạn đã được xác nhận.

Tổng đơn hàng: {{totalPrice}}
{{#if estimatedDelivery}}Dự kiến giao hàng: {{estimatedDelivery}}
{{/if}}
Chúng tôi sẽ thông báo khi bắt đầu sản xuất và khi đơn hàng được giao.

Trân trọng,
Đội ngũ kinh doanh NKC Furniture`,
		},
	}
}

func inspectionScheduled() *Template {
	return &Template{
		ID: TemplateInspectionScheduled,
		Name: Bilingual{
			EN: "Inspection Scheduled",
			VI: "Lịch kiểm tra hàng",
		},
		Subject: Bilingual{
			EN: "Inspection scheduled for order {{orderNumber}}",
			VI: "Đã xếp lịch kiểm tra cho đơn hàng {{orderNumber}}",
		},
		HTML: Bilingual{
			EN: `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #8B4513;">Inspection scheduled</h2>
  <p>Dear {{customerName}},</p>
  <p>A quality inspection for order <strong>{{orderNumber}}</strong> has been scheduled:</p>
  <ul>
    <li>Date: <strong>{{inspectionDate}}</strong></li>
    {{#if inspectionTime}}<li>Time: <strong>{{inspectionTime}}</strong></li>{{/if}}
    {{#if factoryAddress}}<li>Location: {{factoryAddress}}</li>{{/if}}
  </ul>
  <p>You are welcome to attend in person or appoint a third-party inspector. Reply to this email to arrange access.</p>
  <p>Best regards,<br>NKC Furniture Sales Team</p>
</div>`,
			VI: `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #8B4513;">Đã xếp lịch kiểm tra hàng</h2>
  <p>Kính gửi {{customerName}},</p>
  <p>Buổi kiểm tra chất lượng cho đơn hàng <strong>{{orderNumber}}</strong> đã được xếp lịch:</p>
  <ul>
    <li>Ngày: <strong>{{inspectionDate}}</strong></li>
    {{#if inspectionTime}}<li>Giờ: <strong>{{inspectionTime}}</strong></li>{{/if}}
    {{#if factoryAddress}}<li>Địa điểm: {{factoryAddress}}</li>{{/if}}
  </ul>
  <p>Bạn có thể trực tiếp tham dự hoặc ủy quyền cho đơn vị kiểm định độc lập. Vui lòng trả lời email này để sắp xếp.</p>
  <p>Trân trọng,<br>Đội ngũ kinh doanh NKC Furniture</p>
</div>`,
		},
		Text: Bilingual{
			EN: `Dear {{customerName}},

A quality inspection for order {{orderNumber}} has been scheduled:

Date: {{inspectionDate}}
{{#if inspectionTime}}Time: {{inspectionTime}}
{{/if}}{{#if factoryAddress}}Location: {{factoryAddress}}
{{/if}}
You are welcome to attend in person or appoint a third-party inspector. Reply to this email to arrange access.

Best regards,
NKC Furniture Sales Team`,
			VI: `Kính gửi {{customerName}},

Buổi kiểm tra chất lượng cho đơn hàng {{orderNumber}} đã được xếp lịch:

Ngày: {{inspectionDate}}
{{#if inspectionTime}}Giờ: {{inspectionTime}}
{{/if}}{{#if factoryAddress}}Địa điểm: {{factoryAddress}}
{{/if}}
Bạn có thể trực tiếp tham dự hoặc ủy quyền cho đơn vị kiểm định độc lập. Vui lòng trả lời email này để sắp xếp.

Trân trọng,
Đội ngũ kinh doanh NKC Furniture`,
		},
	}
}
