package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/bangmod-market/internal/i18n"
	"github.com/bangmod-market/internal/models"
)

// 邮件类型
const (
	MailKindVerifyEmail   = "verify_email"
	MailKindResetPassword = "reset_password"
	MailKindOrderPlaced   = "order_placed"
)

func frontendLink(frontendURL, pagePath, token string) string {
	base := strings.TrimRight(strings.TrimSpace(frontendURL), "/")
	link := base + pagePath
	if token != "" {
		link += "?token=" + url.QueryEscape(token)
	}
	return link
}

func buildVerifyEmailMail(locale, frontendURL, nickname, token string, expireHours int) (string, string) {
	link := frontendLink(frontendURL, "/verify-email", token)
	return i18n.T(locale, "mail.verify_email.subject"),
		i18n.Sprintf(locale, "mail.verify_email.body", nickname, link, expireHours)
}

func buildResetPasswordMail(locale, frontendURL, nickname, token string, expireMinutes int) (string, string) {
	link := frontendLink(frontendURL, "/reset-password", token)
	return i18n.T(locale, "mail.reset_password.subject"),
		i18n.Sprintf(locale, "mail.reset_password.body", nickname, link, expireMinutes)
}

func buildOrderPlacedMail(locale, frontendURL string, order *models.Order) (string, string) {
	sellerName, buyerName := "", ""
	if order.Seller != nil {
		sellerName = order.Seller.Nickname
	}
	if order.Buyer != nil {
		buyerName = order.Buyer.Nickname
	}
	link := frontendLink(frontendURL, fmt.Sprintf("/seller/orders/%d", order.ID), "")
	return i18n.Sprintf(locale, "mail.order_placed.subject", order.ID),
		i18n.Sprintf(locale, "mail.order_placed.body", sellerName, buyerName, order.ID, len(order.Details), order.OrderStatus, link)
}
