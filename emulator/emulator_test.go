package emulator_test

import (
	"bytes"
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ezrec/compufun/cpu"
	"github.com/ezrec/compufun/emulator"
)

func source(lines ...string) string {
	return strings.Join(lines, "\n")
}

var _ = Describe("Emulator", func() {
	var emu *emulator.Emulator

	BeforeEach(func() {
		emu = emulator.NewEmulator()
	})

	It("should start with an empty program", func() {
		Expect(emu.Verbose).To(BeFalse())
		Expect(emu.Processor).NotTo(BeNil())
		Expect(emu.Reset()).To(Succeed())

		done, err := emu.Tick()
		Expect(err).NotTo(HaveOccurred())
		Expect(done).To(BeTrue())
	})

	It("should run a store/load round trip", func() {
		Expect(emu.Assemble(source(
			"set 5",
			"sta 10",
			"get 10",
		))).To(Succeed())

		for n := range 3 {
			Expect(emu.LineNo()).To(Equal(n + 1))
			Expect(emu.Code()).To(Equal(emu.Program.Records()[n]))
			done, err := emu.Tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(done).To(BeFalse())
		}

		Expect(emu.Memory[10]).To(Equal(uint8(5)))
		Expect(emu.A).To(Equal(uint8(5)))
		Expect(emu.Ticks()).To(Equal(3))

		done, err := emu.Tick()
		Expect(err).NotTo(HaveOccurred())
		Expect(done).To(BeTrue())
		Expect(emu.LineNo()).To(Equal(0))
	})

	It("should keep A across push and pop", func() {
		Expect(emu.Assemble(source(
			"set 0x7f",
			"psh",
			"pop",
		))).To(Succeed())

		ticks, err := emu.Run(0)
		Expect(err).NotTo(HaveOccurred())
		Expect(ticks).To(Equal(3))
		Expect(emu.A).To(Equal(uint8(0x7f)))
		Expect(emu.Stack.Empty()).To(BeTrue())
	})

	It("should report runtime errors with the source line", func() {
		Expect(emu.Assemble(source(
			";; pop with nothing pushed",
			"set 3",
			"pop",
			"set 4",
		))).To(Succeed())

		_, err := emu.Run(0)
		Expect(err).To(MatchError(cpu.ErrStackUnderflow))

		var runtime *emulator.ErrRuntime
		Expect(errors.As(err, &runtime)).To(BeTrue())
		Expect(runtime.LineNo).To(Equal(3))
		Expect(runtime.Pc).To(Equal(uint16(1)))
		Expect(runtime.Error()).To(HavePrefix("line 3 pc 0x0001 "))

		// The run halts; nothing past the fault executed.
		Expect(emu.A).To(Equal(uint8(3)))
		Expect(emu.Pc()).To(Equal(1))
	})

	It("should stop at the tick limit", func() {
		Expect(emu.Assemble(source(
			":spin",
			"set 1",
			"jmp spin",
		))).To(Succeed())

		ticks, err := emu.Run(10)
		Expect(err).To(MatchError(emulator.ErrTickLimit))
		Expect(ticks).To(Equal(10))
		Expect(emu.Ticks()).To(Equal(10))
	})

	It("should not report the limit when the program ends on it", func() {
		Expect(emu.Assemble(source(
			"set 1",
			"set 2",
		))).To(Succeed())

		ticks, err := emu.Run(2)
		Expect(err).NotTo(HaveOccurred())
		Expect(ticks).To(Equal(2))
	})

	It("should land one past a jump target", func() {
		Expect(emu.Assemble(source(
			"jmp skip",
			":skip",
			"set 0xee",
			"set 0x11",
		))).To(Succeed())

		_, err := emu.Run(0)
		Expect(err).NotTo(HaveOccurred())
		Expect(emu.A).To(Equal(uint8(0x11)))
		Expect(emu.Ticks()).To(Equal(2))
	})

	It("should count down with dex and cfl", func() {
		Expect(emu.Assemble(source(
			"set 3",
			"swp",
			":loop",
			"cfl 0",
			"dex",
			"cfl 6",
			"jmp loop",
			"set 0xaa",
		))).To(Succeed())

		ticks, err := emu.Run(100)
		Expect(err).NotTo(HaveOccurred())
		Expect(ticks).To(Equal(12))
		Expect(emu.A).To(Equal(uint8(0xaa)))
		Expect(emu.X).To(Equal(uint8(0)))
	})

	It("should run programs loaded from a binary image", func() {
		asm := &cpu.Assembler{}
		prog, err := asm.Assemble(source("set 9", "swp", "set 1", "sub"))
		Expect(err).NotTo(HaveOccurred())

		records, err := cpu.DecodeBinary(prog.Binary())
		Expect(err).NotTo(HaveOccurred())

		emu.Program, err = cpu.NewProgram(records)
		Expect(err).NotTo(HaveOccurred())
		Expect(emu.Reset()).To(Succeed())

		_, err = emu.Run(0)
		Expect(err).NotTo(HaveOccurred())
		Expect(emu.A).To(Equal(uint8(0xf8)))
		Expect(emu.X).To(Equal(uint8(9)))
	})

	It("should reject source with assembly errors", func() {
		err := emu.Assemble(source("set 1", "jmp nowhere"))
		Expect(err).To(MatchError(cpu.ErrLabel))

		var syntax *cpu.ErrSyntax
		Expect(errors.As(err, &syntax)).To(BeTrue())
		Expect(syntax.LineNo).To(Equal(2))
	})

	It("should render state tables", func() {
		Expect(emu.Assemble(source(
			"set 0x42",
			"sta 0x101",
			"psh",
		))).To(Succeed())

		_, err := emu.Run(0)
		Expect(err).NotTo(HaveOccurred())

		var buf bytes.Buffer
		Expect(emu.WriteState(&buf, 0x100, 20)).To(Succeed())

		text := buf.String()
		Expect(text).To(ContainSubstring("0x0003"))
		Expect(text).To(ContainSubstring("0x42 [1]"))
		Expect(text).To(ContainSubstring("01000000"))
		Expect(text).To(ContainSubstring("0x0100"))
		Expect(text).To(ContainSubstring("0x0110"))
		Expect(text).To(ContainSubstring(" 42 "))

		buf.Reset()
		Expect(emu.WriteState(&buf, 0xfff8, 16)).To(MatchError(cpu.ErrAddressRange))
	})
})
