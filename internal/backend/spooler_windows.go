//go:build windows

// internal/backend/spooler_windows.go
package backend

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modWinspool      = windows.NewLazySystemDLL("winspool.drv")
	procOpenPrinterW = modWinspool.NewProc("OpenPrinterW")
	procClosePrinter = modWinspool.NewProc("ClosePrinter")
	procStartDoc     = modWinspool.NewProc("StartDocPrinterW")
	procEndDoc       = modWinspool.NewProc("EndDocPrinter")
	procStartPage    = modWinspool.NewProc("StartPagePrinter")
	procEndPage      = modWinspool.NewProc("EndPagePrinter")
	procWritePrinter = modWinspool.NewProc("WritePrinter")
)

// docInfo1 mirrors DOC_INFO_1W
type docInfo1 struct {
	DocName    *uint16
	OutputFile *uint16
	Datatype   *uint16
}

type winspoolAPI struct{}

// NativeSpoolerAPI returns the winspool.drv backed spooler API
func NativeSpoolerAPI() (SpoolerAPI, error) {
	if err := modWinspool.Load(); err != nil {
		return nil, err
	}
	return winspoolAPI{}, nil
}

func (winspoolAPI) OpenPrinter(name string) (SpoolHandle, error) {
	namePtr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return 0, err
	}
	var handle windows.Handle
	r1, _, err := procOpenPrinterW.Call(uintptr(unsafe.Pointer(namePtr)), uintptr(unsafe.Pointer(&handle)), 0)
	if r1 == 0 {
		return 0, err
	}
	return SpoolHandle(handle), nil
}

func (winspoolAPI) ClosePrinter(h SpoolHandle) error {
	r1, _, err := procClosePrinter.Call(uintptr(h))
	if r1 == 0 {
		return err
	}
	return nil
}

func (winspoolAPI) StartDocPrinter(h SpoolHandle, docName, datatype string) (uint32, error) {
	namePtr, err := windows.UTF16PtrFromString(docName)
	if err != nil {
		return 0, err
	}
	typePtr, err := windows.UTF16PtrFromString(datatype)
	if err != nil {
		return 0, err
	}
	doc := docInfo1{DocName: namePtr, Datatype: typePtr}
	r1, _, err := procStartDoc.Call(uintptr(h), 1, uintptr(unsafe.Pointer(&doc)))
	if r1 == 0 {
		return 0, err
	}
	return uint32(r1), nil
}

func (winspoolAPI) EndDocPrinter(h SpoolHandle) error {
	r1, _, err := procEndDoc.Call(uintptr(h))
	if r1 == 0 {
		return err
	}
	return nil
}

func (winspoolAPI) StartPagePrinter(h SpoolHandle) error {
	r1, _, err := procStartPage.Call(uintptr(h))
	if r1 == 0 {
		return err
	}
	return nil
}

func (winspoolAPI) EndPagePrinter(h SpoolHandle) error {
	r1, _, err := procEndPage.Call(uintptr(h))
	if r1 == 0 {
		return err
	}
	return nil
}

func (winspoolAPI) WritePrinter(h SpoolHandle, data []byte) (uint32, error) {
	if len(data) == 0 {
		return 0, nil
	}
	var written uint32
	r1, _, err := procWritePrinter.Call(
		uintptr(h),
		uintptr(unsafe.Pointer(&data[0])),
		uintptr(len(data)),
		uintptr(unsafe.Pointer(&written)),
	)
	if r1 == 0 {
		return written, err
	}
	return written, nil
}
