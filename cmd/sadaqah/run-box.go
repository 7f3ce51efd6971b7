package main

import (
	"fmt"

	"github.com/urfave/cli"

	"sadaqah_go/internal/domain"
)

func runBoxList(c *cli.Context) error {

	m := getMetadata(c)

	params := domain.ListBoxesParams{
		SortBy:    c.String("sort-by"),
		SortOrder: c.String("order"),
	}

	response, err := m.boot.Service.ListBoxes(m.ctx, params)
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runBoxShow(c *cli.Context) error {

	m := getMetadata(c)

	args, err := checkArgs(c, "BOX-ID")
	if nil != err {
		return err
	}

	detail, err := m.boot.Service.BoxDetail(m.ctx, args[0], c.Int("page"), c.Int("collections-page"))
	if nil != err {
		return err
	}

	return printJson(m.w, detail)
}

func runBoxCreate(c *cli.Context) error {

	m := getMetadata(c)

	request := domain.CreateBoxRequest{
		Name:           c.String("name"),
		Description:    c.String("description"),
		BaseCurrencyID: c.String("currency"),
	}

	if m.verbose {
		fmt.Fprintf(m.e, "name: %q\n", request.Name)
	}

	response, err := m.boot.Service.CreateBox(m.ctx, request)
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runBoxUpdate(c *cli.Context) error {

	m := getMetadata(c)

	args, err := checkArgs(c, "BOX-ID")
	if nil != err {
		return err
	}

	request := domain.UpdateBoxRequest{
		Name:           optionalString(c, "name"),
		Description:    optionalString(c, "description"),
		BaseCurrencyID: optionalString(c, "currency"),
	}
	if request.Name == nil && request.Description == nil && request.BaseCurrencyID == nil {
		return fmt.Errorf("nothing to update")
	}

	response, err := m.boot.Service.UpdateBox(m.ctx, args[0], request)
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runBoxDelete(c *cli.Context) error {

	m := getMetadata(c)

	args, err := checkArgs(c, "BOX-ID")
	if nil != err {
		return err
	}

	response, err := m.boot.Service.DeleteBox(m.ctx, args[0])
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runBoxEmpty(c *cli.Context) error {

	m := getMetadata(c)

	args, err := checkArgs(c, "BOX-ID")
	if nil != err {
		return err
	}

	response, err := m.boot.Service.EmptyBox(m.ctx, args[0])
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runBoxCollections(c *cli.Context) error {

	m := getMetadata(c)

	args, err := checkArgs(c, "BOX-ID")
	if nil != err {
		return err
	}

	// the cache holds one page per box, so only the first page is read through it
	page := domain.PageParams{Page: c.Int("page"), Limit: domain.CollectionsPerPage}
	get := m.boot.Service.ListCollections
	if page.Page <= 1 {
		get = m.boot.Service.GetBoxCollections
	}
	response, err := get(m.ctx, args[0], page)
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}
