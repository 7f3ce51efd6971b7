package main

import (
	"github.com/urfave/cli"

	"sadaqah_go/internal/domain"
)

func runCurrencyList(c *cli.Context) error {

	m := getMetadata(c)

	response, err := m.boot.Service.ListCurrencies(m.ctx)
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runCurrencyShow(c *cli.Context) error {

	m := getMetadata(c)

	args, err := checkArgs(c, "CURRENCY-ID")
	if nil != err {
		return err
	}

	response, err := m.boot.Service.GetCurrency(m.ctx, args[0])
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runCurrencyCreate(c *cli.Context) error {

	m := getMetadata(c)

	request := domain.CreateCurrencyRequest{
		Code:           c.String("code"),
		Name:           c.String("name"),
		Symbol:         c.String("symbol"),
		CurrencyTypeID: c.String("type"),
	}
	if s := c.String("usd-value"); s != "" {
		usd, err := domain.ParseValue(s)
		if nil != err {
			return err
		}
		request.USDValue = usd
	}

	response, err := m.boot.Service.CreateCurrency(m.ctx, request)
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runCurrencyDelete(c *cli.Context) error {

	m := getMetadata(c)

	args, err := checkArgs(c, "CURRENCY-ID")
	if nil != err {
		return err
	}

	response, err := m.boot.Service.DeleteCurrency(m.ctx, args[0])
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runGoldRates(c *cli.Context) error {

	m := getMetadata(c)

	response, err := m.boot.Service.UpdateGoldRates(m.ctx)
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runCurrencyTypeList(c *cli.Context) error {

	m := getMetadata(c)

	response, err := m.boot.Service.ListCurrencyTypes(m.ctx)
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runCurrencyTypeShow(c *cli.Context) error {

	m := getMetadata(c)

	args, err := checkArgs(c, "TYPE-ID")
	if nil != err {
		return err
	}

	response, err := m.boot.Service.GetCurrencyType(m.ctx, args[0])
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runCurrencyTypeCreate(c *cli.Context) error {

	m := getMetadata(c)

	request := domain.CreateCurrencyTypeRequest{
		Name:        c.String("name"),
		Description: c.String("description"),
	}

	response, err := m.boot.Service.CreateCurrencyType(m.ctx, request)
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runCurrencyTypeDelete(c *cli.Context) error {

	m := getMetadata(c)

	args, err := checkArgs(c, "TYPE-ID")
	if nil != err {
		return err
	}

	response, err := m.boot.Service.DeleteCurrencyType(m.ctx, args[0])
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}
